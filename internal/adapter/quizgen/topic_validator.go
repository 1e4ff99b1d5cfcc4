package quizgen

import "strings"

// allowedKeywords is the curated allowlist of programming and technology
// terms used to gate quiz topics. Matching is by substring over the
// lower-cased topic, not by whole word; short entries like "r " trade
// precision for recall on purpose.
var allowedKeywords = []string{
	// Programming Languages
	"python", "javascript", "java", "c++", "c#", "csharp", "ruby", "php",
	"swift", "kotlin", "go", "golang", "rust", "typescript", "scala",
	"perl", "r ", "matlab", "lua", "dart", "elixir", "haskell", "clojure",

	// Web Development
	"html", "css", "sass", "scss", "less", "bootstrap", "tailwind",
	"react", "angular", "vue", "svelte", "next.js", "nextjs", "nuxt",
	"node", "express", "django", "flask", "fastapi", "rails", "laravel",
	"asp.net", "spring", "frontend", "backend", "fullstack", "full-stack",
	"web development", "web design", "responsive", "ajax", "fetch", "api",
	"rest", "graphql", "websocket", "http", "dom", "browser",

	// Databases
	"sql", "mysql", "postgresql", "postgres", "mongodb", "redis", "sqlite",
	"oracle", "database", "nosql", "query", "queries", "orm", "schema",
	"normalization", "index", "join", "crud",

	// DevOps & Tools
	"git", "github", "gitlab", "bitbucket", "docker", "kubernetes", "k8s",
	"aws", "azure", "gcp", "cloud", "linux", "unix", "bash", "shell",
	"ci/cd", "jenkins", "devops", "deployment", "server", "nginx", "apache",
	"terminal", "command line", "cli", "ssh", "heroku", "vercel", "netlify",

	// Programming Concepts
	"algorithm", "data structure", "array", "list", "dictionary", "hash",
	"tree", "graph", "stack", "queue", "heap", "linked list", "binary",
	"sorting", "searching", "recursion", "iteration", "loop", "function",
	"class", "object", "oop", "object-oriented", "inheritance", "polymorphism",
	"encapsulation", "abstraction", "interface", "design pattern", "solid",
	"dry", "kiss", "clean code", "refactoring", "debugging", "testing",
	"unit test", "tdd", "bdd", "agile", "scrum",

	// Data & AI
	"machine learning", "ml", "artificial intelligence", "ai", "deep learning",
	"neural network", "tensorflow", "pytorch", "pandas", "numpy", "scipy",
	"data science", "data analysis", "big data", "data engineering",
	"statistics", "visualization", "matplotlib", "jupyter", "notebook",

	// Security & Networking
	"security", "cybersecurity", "encryption", "authentication", "oauth",
	"jwt", "csrf", "xss", "sql injection", "hashing", "ssl", "tls",
	"networking", "tcp", "ip", "dns", "firewall", "vpn", "protocol",

	// Mobile Development
	"android", "ios", "mobile", "react native", "flutter", "xamarin",
	"app development", "mobile app",

	// General Tech
	"programming", "coding", "software", "developer", "development",
	"computer science", "cs", "tech", "technology", "it", "information technology",
	"framework", "library", "package", "module", "dependency", "npm", "pip",
	"version control", "ide", "editor", "vscode", "visual studio",
	"variable", "constant", "string", "integer", "float", "boolean",
	"conditional", "if statement", "switch", "exception", "error handling",
	"async", "await", "promise", "callback", "closure", "scope",
	"memory", "pointer", "reference", "garbage collection", "compiler",
	"interpreter", "runtime", "syntax", "semantics", "paradigm",
}

// IsValidTopic reports whether the topic is related to programming or
// technology. It is a binary gate: true if at least one allowlisted keyword
// is a substring of the lower-cased topic. It never fails.
func IsValidTopic(topic string) bool {
	topicLower := strings.ToLower(topic)
	for _, keyword := range allowedKeywords {
		if strings.Contains(topicLower, keyword) {
			return true
		}
	}
	return false
}

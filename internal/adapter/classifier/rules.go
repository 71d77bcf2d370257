package classifier

import (
	"context"
	"regexp"
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"go.uber.org/zap"
)

type rule struct {
	category domain.CategoryDraft
	keywords []string
	patterns []*regexp.Regexp
}

// Frameworks come before their languages so "Next.js routing" lands on
// Next.js rather than JavaScript. Order is the tie-break: first match wins.
var defaultRules = []rule{
	{category: cat("Next.js", "nextjs", "The React framework for production web applications"), keywords: []string{"next.js", "nextjs"}},
	{category: cat("React", "react", "The JavaScript library for building user interfaces"), keywords: []string{"react", "reactjs", "react.js", "jsx"}},
	{category: cat("Vue.js", "vuejs", "The progressive JavaScript framework"), keywords: []string{"vue", "vuejs", "vue.js", "nuxt"}},
	{category: cat("Angular", "angular", "The TypeScript-based web application framework"), keywords: []string{"angular", "angularjs"}},
	{category: cat("Svelte", "svelte", "The compiler-based UI framework"), keywords: []string{"svelte", "sveltekit"}},
	{category: cat("Node.js", "nodejs", "Server-side JavaScript runtime and its ecosystem"), keywords: []string{"node.js", "nodejs", "node", "express", "npm"}},
	{category: cat("Django", "django", "The batteries-included Python web framework"), keywords: []string{"django"}},
	{category: cat("Flask", "flask", "The lightweight Python web framework"), keywords: []string{"flask"}},
	{category: cat("Spring", "spring", "The Java application framework"), keywords: []string{"spring boot", "spring framework", "spring mvc"}},
	{category: cat("Ruby on Rails", "ruby-on-rails", "The Ruby web application framework"), keywords: []string{"rails", "ruby on rails"}},
	{category: cat("TypeScript", "typescript", "Typed superset of JavaScript"), keywords: []string{"typescript"}},
	{category: cat("JavaScript", "javascript", "The language of the web"), keywords: []string{"javascript", "js", "ecmascript", "es6"}},
	{category: cat("Python", "python", "General-purpose programming language"), keywords: []string{"python", "pip", "pandas", "numpy"}},
	{category: cat("Java", "java", "Object-oriented language for the JVM"), keywords: []string{"java", "jvm"}},
	{category: cat("Go", "go", "Statically typed compiled language from Google"), keywords: []string{"golang", "goroutine", "goroutines", "go language", "go programming"}},
	{category: cat("Rust", "rust", "Memory-safe systems programming language"), keywords: []string{"rust", "cargo"}},
	{category: cat("C#", "csharp", "Microsoft's language for .NET"), keywords: []string{"c#", "csharp", ".net", "dotnet"}},
	{category: cat("C++", "cpp", "Systems programming language with zero-cost abstractions"), keywords: []string{"c++", "cpp"}},
	{category: cat("PHP", "php", "Server-side scripting language"), keywords: []string{"php", "laravel"}},
	{category: cat("Ruby", "ruby", "Dynamic, object-oriented scripting language"), keywords: []string{"ruby"}},
	{category: cat("Kotlin", "kotlin", "Modern JVM and Android language"), keywords: []string{"kotlin"}},
	{category: cat("Swift", "swift", "Apple's language for iOS and macOS"), keywords: []string{"swift", "swiftui"}},
	{category: cat("HTML & CSS", "html-css", "Markup and styling for the web"), keywords: []string{"html", "css", "tailwind", "sass", "flexbox"}},
	{category: cat("Databases", "databases", "Data modeling, SQL and database systems"), keywords: []string{"sql", "mysql", "postgresql", "postgres", "mongodb", "database", "databases", "nosql", "redis", "oracle"}},
	{category: cat("DevOps", "devops", "Delivery pipelines, containers and infrastructure automation"), keywords: []string{"devops", "docker", "kubernetes", "k8s", "ci/cd", "terraform", "ansible", "jenkins"}},
	{category: cat("Cloud Computing", "cloud-computing", "Cloud platforms and services"), keywords: []string{"aws", "azure", "gcp", "cloud"}},
	{category: cat("Cybersecurity", "cybersecurity", "Protecting systems, networks and data"), keywords: []string{"cybersecurity", "security", "encryption", "xss", "owasp", "csrf", "penetration testing"}},
	{category: cat("Machine Learning", "machine-learning", "Learning from data with statistical models"), keywords: []string{"machine learning", "deep learning", "neural network", "neural networks", "ml", "ai"}},
	{category: cat("Data Structures & Algorithms", "algorithms", "Core computer science problem solving"), keywords: []string{"algorithm", "algorithms", "data structure", "data structures", "sorting", "big o", "recursion"}},
	{category: cat("Git", "git", "Distributed version control"), keywords: []string{"git", "github", "gitlab"}},
	{category: cat("Linux", "linux", "The Linux operating system and shell"), keywords: []string{"linux", "bash", "shell scripting", "unix"}},
}

func cat(name, slug, description string) domain.CategoryDraft {
	return domain.CategoryDraft{Name: name, Slug: slug, Description: description}
}

func compileRules(rules []rule) []rule {
	compiled := make([]rule, len(rules))
	for i, r := range rules {
		r.patterns = make([]*regexp.Regexp, len(r.keywords))
		for j, kw := range r.keywords {
			r.patterns[j] = regexp.MustCompile(`(?:^|[^a-z0-9])` + regexp.QuoteMeta(kw) + `(?:[^a-z0-9]|$)`)
		}
		compiled[i] = r
	}
	return compiled
}

// RuleClassifier maps keywords in text to canonical categories without
// calling the model.
type RuleClassifier struct {
	rules []rule
}

// NewRuleClassifier creates a classifier over the built-in keyword table.
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{rules: compileRules(defaultRules)}
}

// Classify returns the first rule with a keyword present in text.
func (r *RuleClassifier) Classify(_ context.Context, text string) domain.CategoryDraft {
	lowered := strings.ToLower(text)
	for _, rl := range r.rules {
		for i, p := range rl.patterns {
			if p.MatchString(lowered) {
				logger.Get().Debug("Rule classification matched",
					zap.String("category", rl.category.Name),
					zap.String("keyword", rl.keywords[i]),
				)
				return normalize(rl.category)
			}
		}
	}
	logger.Get().Debug("No classification rule matched, using fallback category")
	return FallbackCategory()
}

// CanonicalCategories lists the built-in categories in table order followed by
// the fallback category.
func CanonicalCategories() []domain.CategoryDraft {
	out := make([]domain.CategoryDraft, 0, len(defaultRules)+1)
	for _, r := range defaultRules {
		out = append(out, r.category)
	}
	return append(out, FallbackCategory())
}

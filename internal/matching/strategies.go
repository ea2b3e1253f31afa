package matching

import "strings"

// Strategy is one layer of the equivalence cascade. A strategy is pure: it
// inspects the two tokens and reports whether they denote the same skill.
type Strategy struct {
	Name  string
	Match func(a, b SkillToken) bool
}

// Cascade is the ordered list of matching layers, cheapest first. The first
// strategy that reports a match wins; later layers are never consulted.
var Cascade = []Strategy{
	{Name: "exact_key", Match: matchExactKey},
	{Name: "abbreviation", Match: matchAbbreviation},
	{Name: "domain_alias", Match: matchDomainAlias},
	{Name: "tech_family", Match: matchTechFamily},
	{Name: "suffix_base", Match: matchSuffixBase},
	{Name: "containment", Match: matchContainment},
	{Name: "special_case", Match: matchSpecialCase},
}

// matchExactKey: normalized keys are identical.
func matchExactKey(a, b SkillToken) bool {
	return a.Key != "" && a.Key == b.Key
}

// abbreviationGroups maps a normalized key to the expansion it abbreviates.
// Both the short and the long form map to the same group, making the table
// bidirectional.
var abbreviationGroups = map[string]string{
	"js":                        "javascript",
	"javascript":                "javascript",
	"ts":                        "typescript",
	"typescript":                "typescript",
	"py":                        "python",
	"python":                    "python",
	"ai":                        "artificialintelligence",
	"artificialintelligence":    "artificialintelligence",
	"ml":                        "machinelearning",
	"machinelearning":           "machinelearning",
	"dl":                        "deeplearning",
	"deeplearning":              "deeplearning",
	"nlp":                       "naturallanguageprocessing",
	"naturallanguageprocessing": "naturallanguageprocessing",
	"k8s":                       "kubernetes",
	"kubernetes":                "kubernetes",
	"db":                        "database",
	"database":                  "database",
	"oop":                       "objectorientedprogramming",
	"objectorientedprogramming": "objectorientedprogramming",
	"ui":                        "userinterface",
	"userinterface":             "userinterface",
	"ux":                        "userexperience",
	"userexperience":            "userexperience",
	"qa":                        "qualityassurance",
	"qualityassurance":          "qualityassurance",
	"cicd":                      "continuousintegration",
	"continuousintegration":     "continuousintegration",
	"aws":                       "amazonwebservices",
	"amazonwebservices":         "amazonwebservices",
	"gcp":                       "googlecloud",
	"googlecloud":               "googlecloud",
	"googlecloudplatform":       "googlecloud",
	"golang":                    "go",
	"go":                        "go",
}

func matchAbbreviation(a, b SkillToken) bool {
	ga, ok := abbreviationGroups[a.Key]
	if !ok {
		return false
	}
	gb, ok := abbreviationGroups[b.Key]
	return ok && ga == gb
}

// domainAliases groups synonyms that are not abbreviations but denote one
// capability bucket.
var domainAliases = map[string]string{
	"docker":             "containers",
	"container":          "containers",
	"containers":         "containers",
	"containerization":   "containers",
	"kubernetes":         "containers",
	"k8s":                "containers",
	"agile":              "agile",
	"agilemethodologies": "agile",
	"agilemethodology":   "agile",
	"rest":               "rest",
	"restful":            "rest",
	"restapi":            "rest",
	"restapis":           "rest",
	"restfulapis":        "rest",
	"microservice":       "microservices",
	"microservices":      "microservices",
	"versioncontrol":     "versioncontrol",
	"git":                "versioncontrol",
}

func matchDomainAlias(a, b SkillToken) bool {
	ga, ok := domainAliases[a.Key]
	if !ok {
		return false
	}
	gb, ok := domainAliases[b.Key]
	return ok && ga == gb
}

// Technology families: two closed name sets where any two members count as
// the same capability even when the literal strings differ.
var sqlFamily = map[string]bool{
	"sql": true, "mysql": true, "postgresql": true, "postgres": true,
	"sqlite": true, "mariadb": true, "mssql": true, "sqlserver": true,
	"microsoftsqlserver": true, "oracle": true, "plsql": true, "tsql": true,
}

var nosqlFamily = map[string]bool{
	"nosql": true, "mongodb": true, "mongo": true, "cassandra": true,
	"dynamodb": true, "redis": true, "couchdb": true, "couchbase": true,
	"documentdb": true,
}

func techFamilyOf(key string) string {
	switch {
	case sqlFamily[key]:
		return "sql"
	case nosqlFamily[key]:
		return "nosql"
	default:
		return ""
	}
}

func matchTechFamily(a, b SkillToken) bool {
	fa := techFamilyOf(a.Key)
	return fa != "" && fa == techFamilyOf(b.Key)
}

// genericSuffixes are stripped once from a key before comparing base words,
// so "java programming" matches "java" and "ui design" matches "ui designer"
// territory without a full stemmer.
var genericSuffixes = []string{
	"programming", "development", "design", "management",
	"testing", "analysis", "engineering",
}

// minSuffixBase rejects bases too short to carry meaning after stripping.
const minSuffixBase = 3

func stripGenericSuffix(key string) string {
	for _, suffix := range genericSuffixes {
		if strings.HasSuffix(key, suffix) {
			base := key[:len(key)-len(suffix)]
			if len(base) >= minSuffixBase {
				return base
			}
		}
	}
	return key
}

func matchSuffixBase(a, b SkillToken) bool {
	ba, bb := stripGenericSuffix(a.Key), stripGenericSuffix(b.Key)
	if ba == a.Key && bb == b.Key {
		// Nothing stripped on either side; exact_key already covered this.
		return false
	}
	return ba == bb
}

// shortTechKeys are recognized two-letter technology abbreviations that are
// exempt from the minimum-length floor on containment matching.
var shortTechKeys = map[string]bool{
	"go": true, "js": true, "ts": true, "py": true, "ai": true,
	"ml": true, "qa": true, "ui": true, "ux": true, "ci": true, "cd": true,
}

// containmentRatio returns the minimum shorter/longer length ratio required
// for a substring hit, tightening as the longer term grows so that short
// fragments cannot claim long phrases.
func containmentRatio(longerLen int) float64 {
	switch {
	case longerLen <= 6:
		return 0.5
	case longerLen <= 10:
		return 0.6
	default:
		return 0.75
	}
}

func matchContainment(a, b SkillToken) bool {
	shorter, longer := a.Key, b.Key
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if shorter == "" || len(shorter) == len(longer) {
		return false
	}
	if len(shorter) < 3 && !shortTechKeys[shorter] {
		return false
	}
	if !strings.Contains(longer, shorter) {
		return false
	}
	ratio := float64(len(shorter)) / float64(len(longer))
	return ratio >= containmentRatio(len(longer))
}

// jsFrameworkKeys is the closed family of JavaScript frameworks and runtimes
// that satisfy a generic "JavaScript" or "framework" requirement.
var jsFrameworkKeys = map[string]bool{
	"react": true, "reactjs": true, "angular": true, "angularjs": true,
	"vue": true, "vuejs": true, "nextjs": true, "nuxtjs": true,
	"svelte": true, "sveltekit": true, "ember": true, "emberjs": true,
	"nodejs": true, "node": true, "express": true, "expressjs": true,
}

// dotNetKeys is the .NET platform family. The keys come from normalized
// forms such as ".NET Core" -> "netcore" and "ASP.NET" -> "aspnet".
var dotNetKeys = map[string]bool{
	"net": true, "netcore": true, "netframework": true,
	"dotnet": true, "dotnetcore": true, "dotnetframework": true,
	"aspnet": true, "aspnetcore": true,
}

func isCSharp(t SkillToken) bool {
	return compactLower(t.Original) == "c#" || t.Key == "csharp"
}

func isVBNet(t SkillToken) bool {
	c := compactLower(t.Original)
	return c == "vb.net" || t.Key == "vbnet" || t.Key == "visualbasic"
}

// matchSpecialCase covers a short list of named equivalences that none of the
// generic layers can express.
func matchSpecialCase(a, b SkillToken) bool {
	// A concrete JS framework satisfies a bare "javascript" or "framework"
	// requirement, and vice versa.
	for _, pair := range [][2]SkillToken{{a, b}, {b, a}} {
		generic, concrete := pair[0], pair[1]
		if (generic.Key == "javascript" || generic.Key == "framework") && jsFrameworkKeys[concrete.Key] {
			return true
		}
	}

	// Members of the .NET platform family are interchangeable.
	if dotNetKeys[a.Key] && dotNetKeys[b.Key] {
		return true
	}

	// C# and VB.NET are treated as one .NET-language capability.
	if (isCSharp(a) || isVBNet(a)) && (isCSharp(b) || isVBNet(b)) {
		return true
	}

	return false
}

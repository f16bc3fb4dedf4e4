package agent

import (
	"fmt"
	"sort"
	"strings"
)

// Identity enumerates the agent kinds. It is a closed set: identities are
// never constructed from untrusted strings except through ParseIdentity.
type Identity int

const (
	IdentityResearch Identity = iota
	IdentityFactCheck
	IdentityBusinessAnalyst
	IdentityWriting
	IdentityPodcast
	IdentityQuiz
	IdentityStudyGuide
)

// identityNames maps identities to their canonical wire names.
var identityNames = map[Identity]string{
	IdentityResearch:        "research",
	IdentityFactCheck:       "fact_check",
	IdentityBusinessAnalyst: "business_analyst",
	IdentityWriting:         "writing",
	IdentityPodcast:         "podcast",
	IdentityQuiz:            "quiz",
	IdentityStudyGuide:      "study_guide",
}

// identitySynonyms maps accepted spellings to identities. The valid-name list
// in UnknownAgentError is generated from this table so the two can never
// drift apart.
var identitySynonyms = map[string]Identity{
	"research":         IdentityResearch,
	"researcher":       IdentityResearch,
	"fact_check":       IdentityFactCheck,
	"fact-check":       IdentityFactCheck,
	"factcheck":        IdentityFactCheck,
	"business_analyst": IdentityBusinessAnalyst,
	"business-analyst": IdentityBusinessAnalyst,
	"analyst":          IdentityBusinessAnalyst,
	"writing":          IdentityWriting,
	"writer":           IdentityWriting,
	"podcast":          IdentityPodcast,
	"quiz":             IdentityQuiz,
	"study_guide":      IdentityStudyGuide,
	"study-guide":      IdentityStudyGuide,
	"studyguide":       IdentityStudyGuide,
}

// String returns the canonical name.
func (i Identity) String() string {
	if name, ok := identityNames[i]; ok {
		return name
	}
	return fmt.Sprintf("identity(%d)", int(i))
}

// Valid reports whether the identity is a member of the closed set.
func (i Identity) Valid() bool {
	_, ok := identityNames[i]
	return ok
}

// Identities returns all identities in declaration order.
func Identities() []Identity {
	return []Identity{
		IdentityResearch,
		IdentityFactCheck,
		IdentityBusinessAnalyst,
		IdentityWriting,
		IdentityPodcast,
		IdentityQuiz,
		IdentityStudyGuide,
	}
}

// ValidAgentNames returns the sorted list of accepted agent names.
func ValidAgentNames() []string {
	names := make([]string, 0, len(identitySynonyms))
	for name := range identitySynonyms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseIdentity normalizes a free-text agent name to an Identity.
// Unknown names fail with an *UnknownAgentError carrying the valid names.
func ParseIdentity(name string) (Identity, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if id, ok := identitySynonyms[normalized]; ok {
		return id, nil
	}
	return 0, &UnknownAgentError{Name: name, Valid: ValidAgentNames()}
}

// UnknownAgentError is returned for names outside the closed identity set.
type UnknownAgentError struct {
	Name  string
	Valid []string
}

func (e *UnknownAgentError) Error() string {
	return fmt.Sprintf("unknown agent: %q (available: %s)", e.Name, strings.Join(e.Valid, ", "))
}

// ConfigError reports a missing required collaborator. It is fatal and raised
// at the point of use, never degraded.
type ConfigError struct {
	Agent   string
	Missing string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s requires %s", e.Agent, e.Missing)
}

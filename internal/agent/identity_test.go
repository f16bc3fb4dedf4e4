package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentity(t *testing.T) {
	cases := []struct {
		name string
		want Identity
	}{
		{"research", IdentityResearch},
		{"researcher", IdentityResearch},
		{"Research", IdentityResearch},
		{"  research  ", IdentityResearch},
		{"fact_check", IdentityFactCheck},
		{"fact-check", IdentityFactCheck},
		{"FactCheck", IdentityFactCheck},
		{"business_analyst", IdentityBusinessAnalyst},
		{"analyst", IdentityBusinessAnalyst},
		{"writing", IdentityWriting},
		{"writer", IdentityWriting},
		{"podcast", IdentityPodcast},
		{"quiz", IdentityQuiz},
		{"study_guide", IdentityStudyGuide},
		{"study-guide", IdentityStudyGuide},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseIdentity(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseIdentity_Unknown(t *testing.T) {
	_, err := ParseIdentity("philosopher")
	require.Error(t, err)

	var unknown *UnknownAgentError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "philosopher", unknown.Name)
	assert.Contains(t, unknown.Valid, "research")
	assert.Contains(t, unknown.Valid, "study_guide")
	assert.Contains(t, err.Error(), "philosopher")
	assert.Contains(t, err.Error(), "business_analyst")
}

func TestIdentityString(t *testing.T) {
	assert.Equal(t, "research", IdentityResearch.String())
	assert.Equal(t, "fact_check", IdentityFactCheck.String())
	assert.Equal(t, "business_analyst", IdentityBusinessAnalyst.String())
	assert.Equal(t, "study_guide", IdentityStudyGuide.String())
}

func TestIdentities_CoverAllConfigs(t *testing.T) {
	for _, id := range Identities() {
		cfg, ok := ConfigFor(id)
		require.True(t, ok, "missing config for %s", id)
		assert.NotEmpty(t, cfg.Name)
		assert.NotEmpty(t, cfg.SystemPrompt)
		assert.Equal(t, id, cfg.Identity)
	}
}

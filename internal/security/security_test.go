package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-generator/internal/analyze"
	"contract-generator/internal/diagnostic"
)

func TestDecide(t *testing.T) {
	roles := Rule{Marker: MarkerRolesAllowed, Roles: []string{"admin"}}

	tests := []struct {
		name     string
		service  Rule
		method   Rule
		expected Decision
	}{
		{"no markers", Rule{}, Rule{}, Decision{Access: Authenticated}},
		{"service anonymous", Rule{Marker: MarkerAnonymous}, Rule{}, Decision{Access: Anonymous}},
		{"service denyAll", Rule{Marker: MarkerDenyAll}, Rule{}, Decision{Excluded: true}},
		{"method overrides denyAll", Rule{Marker: MarkerDenyAll}, roles, Decision{Access: Authenticated, Roles: []string{"admin"}}},
		{"method denyAll overrides anonymous", Rule{Marker: MarkerAnonymous}, Rule{Marker: MarkerDenyAll}, Decision{Excluded: true}},
		{"permitAll is authenticated", Rule{}, Rule{Marker: MarkerPermitAll}, Decision{Access: Authenticated}},
		{"method anonymous", roles, Rule{Marker: MarkerAnonymous}, Decision{Access: Anonymous}},
		{"service roles", roles, Rule{}, Decision{Access: Authenticated, Roles: []string{"admin"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decide(tt.service, tt.method))
		})
	}
}

func TestRuleOf(t *testing.T) {
	rule, err := RuleOf("x.Svc.M", analyze.Directives{
		{Name: analyze.DirectiveTags, Args: []string{"a"}},
		{Name: analyze.DirectiveRolesAllowed, Args: []string{"admin", "user"}},
		{Name: analyze.DirectiveRolesAllowed, Args: []string{"user", "auditor"}},
	})
	require.NoError(t, err)
	assert.Equal(t, Rule{Marker: MarkerRolesAllowed, Roles: []string{"admin", "user", "auditor"}}, rule)

	rule, err = RuleOf("x.Svc.M", nil)
	require.NoError(t, err)
	assert.Equal(t, MarkerNone, rule.Marker)

	_, err = RuleOf("x.Svc.M", analyze.Directives{
		{Name: analyze.DirectiveAnonymous},
		{Name: analyze.DirectiveDenyAll},
	})
	require.Error(t, err)
	assert.True(t, diagnostic.IsKind(err, diagnostic.KindConflictingSecurity))
	assert.Contains(t, err.Error(), "rpc:anonymous and rpc:denyAll")
}

func TestClassifier_Shop(t *testing.T) {
	scan, err := analyze.Load(context.Background(), "../../examples/shop")
	require.NoError(t, err)

	decisions := make(map[string]Decision)

	for _, svc := range scan.Services {
		for _, m := range svc.Methods {
			d, err := Classifier{}.Classify(svc, m)
			require.NoError(t, err)

			decisions[svc.Name+"."+m.Name] = d
		}
	}

	assert.Equal(t, Decision{Access: Authenticated, Roles: []string{"customer", "admin"}}, decisions["Orders.Place"])
	assert.Equal(t, Decision{Excluded: true}, decisions["Orders.Cancel"])
	assert.Equal(t, Decision{Access: Authenticated}, decisions["Orders.Lookup"])
	assert.Equal(t, Decision{Access: Anonymous}, decisions["CatalogService.Find"])
	assert.Equal(t, Decision{Access: Authenticated}, decisions["Inventory.Stock"])
}

func TestClassifier_Conflict(t *testing.T) {
	scan, err := analyze.Load(context.Background(), "../../examples/conflict")
	require.NoError(t, err)
	require.Len(t, scan.Services, 1)

	svc := scan.Services[0]
	_, err = Classifier{}.Classify(svc, svc.Methods[0])
	assert.True(t, diagnostic.IsKind(err, diagnostic.KindConflictingSecurity))
}

func TestAccess_String(t *testing.T) {
	assert.Equal(t, "anonymous", Anonymous.String())
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "unknown", Access(7).String())
}

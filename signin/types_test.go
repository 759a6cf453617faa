package signin_test

import (
	"testing"

	"github.com/jrsteele09/go-storefront/internal/utils"
	"github.com/jrsteele09/go-storefront/signin"
	"github.com/stretchr/testify/require"
)

func TestSplitName(t *testing.T) {
	first, last := signin.SplitName("  Ada   King Lovelace ")
	require.Equal(t, "Ada", first)
	require.Equal(t, "King Lovelace", last)

	first, last = signin.SplitName("Cher")
	require.Equal(t, "Cher", first)
	require.Empty(t, last)

	first, last = signin.SplitName("")
	require.Empty(t, first)
	require.Empty(t, last)
}

func TestOAuthProfile_NamesPreferGivenAndFamily(t *testing.T) {
	p := signin.OAuthProfile{Name: "Display Name", GivenName: "Given", FamilyName: "Family"}
	require.Equal(t, "Given", p.FirstName())
	require.Equal(t, "Family", p.LastName())
}

func TestResolveDefaults(t *testing.T) {
	require.Equal(t, "bob", signin.ResolveUsername("", "bob@example.com"))
	require.Equal(t, "robert", signin.ResolveUsername("robert", "bob@example.com"))
	require.Equal(t, signin.DefaultRole, signin.ResolveRole(""))
	require.Equal(t, "admin", signin.ResolveRole("admin"))
	require.False(t, signin.ResolveProfileComplete(nil))
	require.True(t, signin.ResolveProfileComplete(utils.Ptr(true)))
}

func TestCredentials_StringRedactsPassword(t *testing.T) {
	s := signin.Credentials{Email: "a@b.com", Password: "hunter2"}.String()
	require.Contains(t, s, "a@b.com")
	require.NotContains(t, s, "hunter2")
}

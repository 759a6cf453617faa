package session_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-storefront/session"
	"github.com/jrsteele09/go-storefront/signin"
	"github.com/stretchr/testify/require"
)

type fakeLinker struct {
	result bool
	panics bool
	calls  int
}

func (f *fakeLinker) LinkOAuth(_ context.Context, _ signin.OAuthProfile, user *signin.User) bool {
	f.calls++
	if f.panics {
		panic("linker exploded")
	}
	if f.result {
		user.AccessToken = "LINKED"
	}
	return f.result
}

func TestChain_CredentialsPassUnconditionally(t *testing.T) {
	linker := &fakeLinker{result: false}
	chain := session.NewChain(linker)

	require.True(t, chain.SignIn(context.Background(), session.Event{Kind: session.KindCredentials, User: &signin.User{}}))
	require.Zero(t, linker.calls)
}

func TestChain_OAuth(t *testing.T) {
	tests := []struct {
		name   string
		linker *fakeLinker
		want   bool
	}{
		{name: "linked", linker: &fakeLinker{result: true}, want: true},
		{name: "link failed", linker: &fakeLinker{result: false}, want: false},
		{name: "linker panics", linker: &fakeLinker{panics: true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := session.NewChain(tt.linker)
			user := &signin.User{}
			ev := session.Event{Kind: session.KindOAuth, User: user, Profile: signin.OAuthProfile{Provider: "google"}}

			require.Equal(t, tt.want, chain.SignIn(context.Background(), ev))
			require.Equal(t, 1, tt.linker.calls)
		})
	}
}

func TestChain_RejectsUnknownKindAndMissingLinker(t *testing.T) {
	require.False(t, session.NewChain(&fakeLinker{result: true}).SignIn(context.Background(), session.Event{Kind: "magic"}))
	require.False(t, session.NewChain(nil).SignIn(context.Background(), session.Event{Kind: session.KindOAuth, User: &signin.User{}}))
}

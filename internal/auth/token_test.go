package auth

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/Gunvolt24/market_arb/internal/domain"
)

func seg(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

func TestValidateToken(t *testing.T) {
	t.Parallel()

	valid := seg(`{"alg":"RS256","typ":"JWT"}`) + "." + seg(`{"sub":"CHARACTER:EVE:1"}`) + ".sig"

	cases := []struct {
		name  string
		token string
		ok    bool
	}{
		{"valid", valid, true},
		{"valid with bearer prefix", "Bearer " + valid, true},
		{"padded header", base64.URLEncoding.EncodeToString([]byte(`{"typ":"JWT"}`)) + ".x.y", true},
		{"empty", "", false},
		{"two segments", seg(`{"typ":"JWT"}`) + ".x", false},
		{"four segments", seg(`{"typ":"JWT"}`) + ".x.y.z", false},
		{"header not base64", "!!!.x.y", false},
		{"header not json", seg("hello") + ".x.y", false},
		{"header json array", seg(`["JWT"]`) + ".x.y", false},
		{"wrong typ", seg(`{"typ":"JWS"}`) + ".x.y", false},
		{"missing typ", seg(`{"alg":"none"}`) + ".x.y", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateToken(tc.token)
			if tc.ok && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if !tc.ok {
				var ae *domain.AuthRequiredError
				if !errors.As(err, &ae) {
					t.Fatalf("want AuthRequiredError, got %v", err)
				}
			}
		})
	}
}

package rpc

import (
	"testing"
	"time"
)

func TestIssueAndParseTokenRoundTrips(t *testing.T) {
	claims := &Claims{SessionID: "sess-1", TableID: "table-1"}
	token, err := IssueToken(claims, "secret", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	parsed, err := ParseToken(token, "secret")
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if parsed.SessionID != "sess-1" || parsed.TableID != "table-1" {
		t.Fatalf("unexpected claims: %+v", parsed)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	claims := &Claims{SessionID: "sess-1"}
	token, err := IssueToken(claims, "secret", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := ParseToken(token, "wrong-secret"); err == nil {
		t.Fatal("expected ParseToken to reject a token signed with a different secret")
	}
}

func TestParseTokenRejectsExpiredToken(t *testing.T) {
	claims := &Claims{SessionID: "sess-1"}
	token, err := IssueToken(claims, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := ParseToken(token, "secret"); err == nil {
		t.Fatal("expected ParseToken to reject an expired token")
	}
}

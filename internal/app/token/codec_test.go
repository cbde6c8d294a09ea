package token

import (
	"strings"
	"testing"
	"time"

	customErrors "github.com/clipstream/clipstream/internal/domain/errors"
	"github.com/clipstream/clipstream/internal/infra/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func testConfig() *config.Config {
	return &config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     time.Minute,
		RefreshTokenTTL:    time.Hour,
		Issuer:             "clipstream",
		Audience:           "clipstream-web",
	}
}

func TestCodec_GenerateValidate(t *testing.T) {
	codec := NewCodec(testConfig())
	uid := uuid.New()

	tok, exp, err := codec.GenerateAccessToken(uid, "alice")
	if err != nil || exp.IsZero() {
		t.Fatalf("bad generate: %v", err)
	}

	claims, err := codec.ValidateAccessToken(tok)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != uid.String() {
		t.Fatalf("want %s got %s", uid, claims.Subject)
	}
	if claims.Username != "alice" {
		t.Fatalf("want alice got %s", claims.Username)
	}
}

func TestCodec_RefreshCycle(t *testing.T) {
	codec := NewCodec(testConfig())
	uid := uuid.New()

	tok, exp, err := codec.GenerateRefreshToken(uid)
	if err != nil || exp.IsZero() {
		t.Fatalf("bad generate: %v", err)
	}
	cl, err := codec.ValidateRefreshToken(tok)
	if err != nil || cl.Subject != uid.String() {
		t.Fatalf("validate error: %v", err)
	}
}

func TestCodec_KeysAreClassBound(t *testing.T) {
	codec := NewCodec(testConfig())
	uid := uuid.New()

	access, _, _ := codec.GenerateAccessToken(uid, "alice")
	refresh, _, _ := codec.GenerateRefreshToken(uid)

	if _, err := codec.ValidateRefreshToken(access); !customErrors.IsInvalidToken(err) {
		t.Fatalf("access token must not verify under refresh key, got %v", err)
	}
	if _, err := codec.ValidateAccessToken(refresh); !customErrors.IsInvalidToken(err) {
		t.Fatalf("refresh token must not verify under access key, got %v", err)
	}
}

func TestCodec_TamperedSignature(t *testing.T) {
	codec := NewCodec(testConfig())

	tok, _, _ := codec.GenerateAccessToken(uuid.New(), "alice")
	parts := strings.Split(tok, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err := codec.ValidateAccessToken(tampered)
	if err != customErrors.ErrBadSignature {
		t.Fatalf("want ErrBadSignature, got %v", err)
	}
}

func TestCodec_Expired(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTokenTTL = -time.Minute
	codec := NewCodec(cfg)

	tok, _, _ := codec.GenerateAccessToken(uuid.New(), "alice")
	_, err := codec.ValidateAccessToken(tok)
	if err != customErrors.ErrTokenExpired {
		t.Fatalf("want ErrTokenExpired, got %v", err)
	}
}

func TestCodec_Malformed(t *testing.T) {
	codec := NewCodec(testConfig())
	if _, err := codec.ValidateAccessToken("not.a.jwt"); err != customErrors.ErrTokenMalformed {
		t.Fatalf("want ErrTokenMalformed, got %v", err)
	}
}

func TestCodec_InvalidAlg(t *testing.T) {
	codec := NewCodec(testConfig())
	tok, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := codec.ValidateAccessToken(tok); !customErrors.IsInvalidToken(err) {
		t.Fatal("expected invalid alg rejection")
	}
}

func TestCodec_WrongAudience(t *testing.T) {
	codec := NewCodec(testConfig())
	other := testConfig()
	other.Audience = "someone-else"
	tok, _, _ := NewCodec(other).GenerateAccessToken(uuid.New(), "alice")
	if _, err := codec.ValidateAccessToken(tok); !customErrors.IsInvalidToken(err) {
		t.Fatal("expected audience rejection")
	}
}

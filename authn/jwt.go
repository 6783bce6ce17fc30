package authn

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SigningMethod selects the algorithm a [JWT] authenticator accepts.
type SigningMethod string

const (
	// MethodEd25519 verifies EdDSA-signed upstream tokens.
	MethodEd25519 SigningMethod = "ed25519"
	// MethodHS256 verifies HMAC-signed upstream tokens.
	MethodHS256 SigningMethod = "hs256"
)

// ErrNoBearerToken is returned when the request carries no usable
// Authorization header.
var ErrNoBearerToken = errors.New("authn: no bearer token")

// JWTConfig configures a [JWT] authenticator.
type JWTConfig struct {
	SigningMethod SigningMethod
	Key           []byte // HMAC secret or ed25519 public key (raw or PEM)
	Issuer        string
	Audience      string
	Leeway        time.Duration

	// IdentityClaim names the claim holding the principal. Empty means the
	// registered "sub" claim.
	IdentityClaim string
}

// JWT authenticates requests by verifying an upstream bearer JWT on every
// invocation. It implements ticketauth.Authenticator: the Gate calls it only
// on the slow path, and the verified principal is then carried by the much
// cheaper ticket.
type JWT struct {
	config JWTConfig
	method jwt.SigningMethod
	key    interface{}
}

// NewJWT validates the configuration and key material up front, so that key
// problems surface at construction rather than per request.
func NewJWT(cfg JWTConfig) (*JWT, error) {
	a := &JWT{config: cfg}

	switch cfg.SigningMethod {
	case MethodHS256:
		if len(cfg.Key) == 0 {
			return nil, errors.New("authn: hs256 requires a key")
		}
		a.method = jwt.SigningMethodHS256
		a.key = cfg.Key
	case MethodEd25519:
		key, err := parseEdPublicKey(cfg.Key)
		if err != nil {
			return nil, err
		}
		a.method = jwt.SigningMethodEdDSA
		a.key = key
	default:
		return nil, fmt.Errorf("authn: unsupported signing method %q", cfg.SigningMethod)
	}

	return a, nil
}

// Authenticate implements ticketauth.Authenticator.
func (a *JWT) Authenticate(_ context.Context, r *http.Request) (string, error) {
	raw, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return "", ErrNoBearerToken
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{a.method.Alg()}),
	}
	if a.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(a.config.Leeway))
	}
	if a.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(a.config.Issuer))
	}
	if a.config.Audience != "" {
		options = append(options, jwt.WithAudience(a.config.Audience))
	}

	parser := jwt.NewParser(options...)
	claims := jwt.MapClaims{}
	token, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != a.method.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return a.key, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	return a.identity(claims)
}

func (a *JWT) identity(claims jwt.MapClaims) (string, error) {
	if a.config.IdentityClaim != "" {
		identity, _ := claims[a.config.IdentityClaim].(string)
		if identity == "" {
			return "", fmt.Errorf("authn: claim %q missing or not a string", a.config.IdentityClaim)
		}
		return identity, nil
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("authn: token has no subject")
	}
	return sub, nil
}

func parseEdPublicKey(key []byte) (ed25519.PublicKey, error) {
	if len(key) == ed25519.PublicKeySize {
		return ed25519.PublicKey(key), nil
	}
	parsed, err := jwt.ParseEdPublicKeyFromPEM(key)
	if err != nil {
		return nil, errors.New("authn: invalid ed25519 public key")
	}
	edKey, ok := parsed.(ed25519.PublicKey)
	if !ok {
		return nil, errors.New("authn: invalid ed25519 public key type")
	}
	return edKey, nil
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}

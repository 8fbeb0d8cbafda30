package service

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
	"github.com/pkg/errors"

	"aiacademy/internal/config"
)

// Identity is an account known to the identity provider
type Identity struct {
	UID     string
	Email   string
	IDToken string
}

// IdentityProvider signs users in and creates accounts by email and password
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	SignUp(ctx context.Context, email, password string) (*Identity, error)
}

// IdentityError is a rejection from the provider, e.g. EMAIL_EXISTS
type IdentityError struct {
	Status int
	Code   string
}

func (e *IdentityError) Error() string {
	return e.Code
}

type firebaseAccount struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

type firebaseError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type firebaseIdentity struct {
	cfg    *config.FirebaseConfig
	client *req.Client
}

// NewFirebaseIdentity talks to the Firebase Auth REST API
func NewFirebaseIdentity(cfg *config.FirebaseConfig) IdentityProvider {
	client := req.C().
		SetTimeout(cfg.Timeout()).
		SetJsonMarshal(json.Marshal).
		SetJsonUnmarshal(json.Unmarshal)
	return &firebaseIdentity{cfg: cfg, client: client}
}

func (f *firebaseIdentity) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	return f.call(ctx, "signInWithPassword", email, password)
}

func (f *firebaseIdentity) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	return f.call(ctx, "signUp", email, password)
}

func (f *firebaseIdentity) call(ctx context.Context, method, email, password string) (*Identity, error) {
	if !f.cfg.IsEnabled() {
		return nil, ErrAuthDisabled
	}

	var ok firebaseAccount
	var fail firebaseError
	resp, err := f.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"email":             email,
			"password":          password,
			"returnSecureToken": true,
		}).
		SetSuccessResult(&ok).
		SetErrorResult(&fail).
		Post(f.cfg.Endpoint(method))
	if err != nil {
		return nil, errors.Wrapf(err, "firebase %s", method)
	}
	if resp.IsErrorState() {
		code := fail.Error.Message
		if code == "" {
			code = http.StatusText(resp.GetStatusCode())
		}
		return nil, &IdentityError{Status: resp.GetStatusCode(), Code: code}
	}
	if ok.LocalID == "" {
		return nil, errors.Errorf("firebase %s: empty account id", method)
	}
	return &Identity{UID: ok.LocalID, Email: ok.Email, IDToken: ok.IDToken}, nil
}

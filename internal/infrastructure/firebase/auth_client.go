package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"stacksphere/internal/domain/entity"
)

// FirebaseAuthClient verifies ID tokens issued to the SPA by Firebase
// Authentication and turns them into sessions.
type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

func (f *FirebaseAuthClient) VerifySession(ctx context.Context, idToken string) (*entity.Session, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	session := SessionFromClaims(token.UID, token.Claims)
	if session.Email == "" {
		return nil, fmt.Errorf("token for %s carries no email", token.UID)
	}
	session.Token = idToken
	return session, nil
}

// RevokeSessions invalidates refresh tokens so the user must sign in again.
func (f *FirebaseAuthClient) RevokeSessions(ctx context.Context, uid string) error {
	return f.client.RevokeRefreshTokens(ctx, uid)
}

func SessionFromClaims(uid string, claims map[string]interface{}) *entity.Session {
	str := func(key string) string {
		if v, ok := claims[key].(string); ok {
			return v
		}
		return ""
	}

	return &entity.Session{
		UID:   uid,
		Email: str("email"),
		Name:  str("name"),
		Photo: str("picture"),
	}
}

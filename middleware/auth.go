package middleware

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

type contextKey string

// ClientIDKey carries the resolved client identity through the request
// context. The rate limiter and leaderboard sync key off it.
const ClientIDKey contextKey = "client_id"

var firebaseAuth *auth.Client

// InitializeFirebase initializes the Firebase Admin SDK from a service
// account in the environment. Without credentials the server runs with
// token verification disabled and identifies clients by address instead.
func InitializeFirebase() error {
	credentials := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if credentials == "" {
		log.Println("No Firebase credentials found, running with token verification disabled")
		return nil
	}

	opt := option.WithCredentialsJSON([]byte(credentials))
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		log.Printf("Error initializing Firebase app: %v", err)
		return err
	}

	firebaseAuth, err = app.Auth(context.Background())
	if err != nil {
		log.Printf("Error getting Firebase Auth client: %v", err)
		return err
	}

	log.Println("Firebase Admin SDK initialized")
	return nil
}

// Identity resolves a per-client identity for each request: a verified
// Firebase ID token when one is presented and verification is enabled,
// otherwise the forwarded-for header or the remote address. Requests are
// never rejected here; identity only feeds rate limiting and sync.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""

		if firebaseAuth != nil {
			if token := bearerToken(r); token != "" {
				verified, err := firebaseAuth.VerifyIDToken(r.Context(), token)
				if err != nil {
					log.Printf("Error verifying ID token: %v", err)
				} else {
					id = verified.UID
				}
			}
		}
		if id == "" {
			id = clientAddress(r)
		}

		ctx := context.WithValue(r.Context(), ClientIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientID returns the identity resolved by Identity, or "unknown".
func ClientID(r *http.Request) string {
	if id, ok := r.Context().Value(ClientIDKey).(string); ok && id != "" {
		return id
	}
	return "unknown"
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func clientAddress(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// First hop is the client.
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

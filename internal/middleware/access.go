package middleware

import (
	"context"
	"crypto/subtle"
	"errors"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

const AccessCodeHeader = "X-Access-Code"

var ErrAccessDenied = errors.New("access code required")

// AccessCode gates the listed procedures behind the club's shared code. It
// keeps casual visitors out of the coach screens and nothing more.
func AccessCode(code string, protected map[string]bool) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			procedure := req.Spec().Procedure
			if !protected[procedure] {
				return next(ctx, req)
			}

			if !CheckAccessCode(code, req.Header().Get(AccessCodeHeader)) {
				zerolog.Ctx(ctx).Warn().Str("procedure", procedure).Msg("access code rejected")
				return nil, connect.NewError(connect.CodeUnauthenticated, ErrAccessDenied)
			}
			return next(ctx, req)
		}
	}
}

// CheckAccessCode reports whether code matches the configured one.
func CheckAccessCode(configured, code string) bool {
	return subtle.ConstantTimeCompare([]byte(configured), []byte(code)) == 1
}

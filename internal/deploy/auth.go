package deploy

import (
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"git.home.luguber.info/inful/mublog/internal/config"
	ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"
)

// authMethod converts the configured credentials into a go-git AuthMethod.
// A nil config or type none yields nil.
func authMethod(auth *config.AuthConfig) (transport.AuthMethod, error) {
	if auth == nil {
		return nil, nil
	}
	switch auth.Type {
	case config.AuthTypeNone, "":
		return nil, nil

	case config.AuthTypeSSH:
		keyPath := auth.KeyPath
		if keyPath == "" {
			keyPath = filepath.Join(os.Getenv("HOME"), ".ssh", "id_rsa")
		}
		keys, err := ssh.NewPublicKeysFromFile("git", keyPath, auth.Password)
		if err != nil {
			return nil, ferrors.GitError("failed to load SSH key").
				WithCause(err).
				WithContext("path", keyPath).
				Build()
		}
		return keys, nil

	case config.AuthTypeToken:
		if auth.Token == "" {
			return nil, ferrors.ConfigError("token authentication requires a token").Build()
		}
		return &http.BasicAuth{Username: "token", Password: auth.Token}, nil

	case config.AuthTypeBasic:
		if auth.Username == "" || auth.Password == "" {
			return nil, ferrors.ConfigError("basic authentication requires username and password").Build()
		}
		return &http.BasicAuth{Username: auth.Username, Password: auth.Password}, nil

	default:
		return nil, ferrors.ConfigError("unsupported authentication type").
			WithContext("type", string(auth.Type)).
			Build()
	}
}

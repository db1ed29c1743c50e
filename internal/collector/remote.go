package collector

import (
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/maxbolgarin/errm"
)

// RemoteWebURL opens the repository containing dir and returns the browsable
// web URL of the named remote.
func RemoteWebURL(dir, remoteName string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", errm.Wrap(err, "open repository")
	}

	remote, err := repo.Remote(remoteName)
	if err != nil {
		return "", errm.Wrap(err, "get remote "+remoteName)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", errm.New("remote %s has no URLs", remoteName)
	}

	web := NormalizeRemoteURL(urls[0])
	if web == "" {
		return "", errm.New("cannot derive web URL from %s", urls[0])
	}

	return web, nil
}

// NormalizeRemoteURL converts a fetch URL (scp-like, ssh or http) into an https web URL.
// Local paths and unknown schemes yield an empty string.
func NormalizeRemoteURL(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, "/")
	raw = strings.TrimSuffix(raw, ".git")

	if !strings.Contains(raw, "://") {
		// user@host:org/repo
		at := strings.Index(raw, "@")
		colon := strings.Index(raw, ":")
		if at == -1 || colon < at {
			return ""
		}
		host := raw[at+1 : colon]
		path := strings.TrimPrefix(raw[colon+1:], "/")
		if host == "" || path == "" {
			return ""
		}
		return "https://" + host + "/" + path
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}

	host := u.Host
	switch u.Scheme {
	case "http", "https":
	case "ssh", "git", "git+ssh":
		u.Scheme = "https"
		host = u.Hostname()
	default:
		return ""
	}

	return u.Scheme + "://" + host + "/" + strings.TrimPrefix(u.Path, "/")
}

package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"simple_cart/internal/repository/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

const (
	sessionIDKey = "cart_session_id"
	storageKey   = "cart_storage"
)

// StorageResolver builds the cart storage for the current request.
type StorageResolver func(c *gin.Context) (storage.Storage, error)

// Session makes sure every visitor carries a session id cookie and resolves the
// request's cart storage.
func Session(cookieName string, maxAge int, resolve StorageResolver, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err != nil || uuid.Validate(sid) != nil {
			sid = uuid.NewString()
			c.SetCookie(cookieName, sid, maxAge, "/", "", false, true)
			log.Debug("new cart session", "session_id", sid)
		}
		c.Set(sessionIDKey, sid)

		store, err := resolve(c)
		if err != nil {
			log.Error("failed to resolve cart storage", "session_id", sid, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "internal_error",
				"message": "cart storage is unavailable",
			})
			return
		}
		c.Set(storageKey, store)
		c.Next()
	}
}

// SessionID returns the id set by the Session middleware.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

func requestStorage(c *gin.Context) storage.Storage {
	return c.MustGet(storageKey).(storage.Storage)
}

// SessionStorage keeps each visitor's cart in medium under key:<session id>.
func SessionStorage(medium storage.KeyValueMedium, key string, log *slog.Logger) StorageResolver {
	return func(c *gin.Context) (storage.Storage, error) {
		sid := SessionID(c)
		if sid == "" {
			return nil, fmt.Errorf("no session id on request")
		}
		return storage.NewKeyValueStorage(medium, key+":"+sid, log), nil
	}
}

// CookieStorage keeps the cart in a signed cookie on the visitor's browser.
func CookieStorage(codec *securecookie.SecureCookie, name string, maxAge int, log *slog.Logger) StorageResolver {
	return func(c *gin.Context) (storage.Storage, error) {
		medium := &cookieMedium{
			c:       c,
			codec:   codec,
			maxAge:  maxAge,
			pending: make(map[string]*string),
			log:     log,
		}
		return storage.NewSerializedBlobStorage(medium, name, log), nil
	}
}

// NewCookieCodec signs cookies with hashKey and encrypts them when blockKey is set.
// An empty hashKey gets a random one, which invalidates carts on restart.
func NewCookieCodec(hashKey, blockKey string, maxAge int) *securecookie.SecureCookie {
	hash := []byte(hashKey)
	if len(hash) == 0 {
		hash = securecookie.GenerateRandomKey(32)
	}
	var block []byte
	if blockKey != "" {
		block = []byte(blockKey)
	}

	codec := securecookie.New(hash, block)
	codec.SetSerializer(securecookie.JSONEncoder{})
	if maxAge > 0 {
		codec.MaxAge(maxAge)
	}
	return codec
}

// cookieMedium reads the request cookie and writes Set-Cookie headers. Writes are also
// kept in pending so later reads in the same request see them; a nil entry is a cleared cookie.
type cookieMedium struct {
	c       *gin.Context
	codec   *securecookie.SecureCookie
	maxAge  int
	pending map[string]*string
	log     *slog.Logger
}

func (m *cookieMedium) Get(name string) (string, bool) {
	if value, ok := m.pending[name]; ok {
		if value == nil {
			return "", false
		}
		return *value, true
	}

	raw, err := m.c.Cookie(name)
	if err != nil {
		return "", false
	}
	var value string
	if err := m.codec.Decode(name, raw, &value); err != nil {
		m.log.Debug("ignoring unreadable cart cookie", "cookie", name, "error", err)
		return "", false
	}
	return value, true
}

func (m *cookieMedium) Set(name, value string) error {
	encoded, err := m.codec.Encode(name, value)
	if err != nil {
		return fmt.Errorf("encode cart cookie: %w", err)
	}
	m.c.SetCookie(name, encoded, m.maxAge, "/", "", false, true)
	m.pending[name] = &value
	return nil
}

func (m *cookieMedium) Clear(name string) {
	m.c.SetCookie(name, "", -1, "/", "", false, true)
	m.pending[name] = nil
}

package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	transport "github.com/clipstream/clipstream/internal/adapters/transport/http"
	"github.com/clipstream/clipstream/internal/app/content"
	"github.com/clipstream/clipstream/internal/app/media"
	"github.com/clipstream/clipstream/internal/app/password"
	"github.com/clipstream/clipstream/internal/app/session"
	apptoken "github.com/clipstream/clipstream/internal/app/token"
	"github.com/clipstream/clipstream/internal/app/validation"
	customErrors "github.com/clipstream/clipstream/internal/domain/errors"
	"github.com/clipstream/clipstream/internal/domain/model"
	"github.com/clipstream/clipstream/internal/infra/config"
	"github.com/clipstream/clipstream/internal/repo"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

/* ──────────────────────────────── stubs ──────────────────────────────── */

type userRepoStub struct {
	users map[uuid.UUID]model.User
}

func (u *userRepoStub) CreateUser(_ context.Context, m model.User) (uuid.UUID, error) {
	for _, v := range u.users {
		if v.Username == m.Username || v.Email == m.Email {
			return uuid.Nil, customErrors.ErrAlreadyExists
		}
	}
	u.users[m.ID] = m
	return m.ID, nil
}

func (u *userRepoStub) GetUserByID(_ context.Context, id uuid.UUID) (model.User, error) {
	v, ok := u.users[id]
	if !ok {
		return model.User{}, customErrors.ErrNotFound
	}
	return v, nil
}

func (u *userRepoStub) GetUserByIdentity(_ context.Context, identity string) (model.User, error) {
	for _, v := range u.users {
		if v.Username == identity || v.Email == identity {
			return v, nil
		}
	}
	return model.User{}, customErrors.ErrNotFound
}

func (u *userRepoStub) UpdateUser(_ context.Context, m model.User) error {
	u.users[m.ID] = m
	return nil
}

func (u *userRepoStub) SetRefreshToken(_ context.Context, id uuid.UUID, token string) error {
	v := u.users[id]
	v.RefreshToken = token
	u.users[id] = v
	return nil
}

func (u *userRepoStub) ClearRefreshToken(_ context.Context, id uuid.UUID) error {
	v, ok := u.users[id]
	if !ok {
		return nil
	}
	v.RefreshToken = ""
	u.users[id] = v
	return nil
}

func (u *userRepoStub) RotateRefreshToken(_ context.Context, id uuid.UUID, presented, next string) error {
	v, ok := u.users[id]
	if !ok || v.RefreshToken != presented {
		return customErrors.ErrStaleToken
	}
	v.RefreshToken = next
	u.users[id] = v
	return nil
}

type postRepoStub struct {
	posts map[uuid.UUID]model.Post
}

func (p *postRepoStub) CreatePost(_ context.Context, m model.Post) (uuid.UUID, error) {
	p.posts[m.ID] = m
	return m.ID, nil
}

func (p *postRepoStub) GetPostByID(_ context.Context, id uuid.UUID) (model.Post, error) {
	v, ok := p.posts[id]
	if !ok {
		return model.Post{}, customErrors.ErrNotFound
	}
	return v, nil
}

func (p *postRepoStub) UpdatePost(_ context.Context, m model.Post) error {
	p.posts[m.ID] = m
	return nil
}

func (p *postRepoStub) DeletePost(_ context.Context, id uuid.UUID) error {
	if _, ok := p.posts[id]; !ok {
		return customErrors.ErrNotFound
	}
	delete(p.posts, id)
	return nil
}

func (p *postRepoStub) ListPostsByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Post, error) {
	var out []model.Post
	for _, v := range p.posts {
		if v.OwnerID == ownerID {
			out = append(out, v)
		}
	}
	return out, nil
}

type videoRepoStub struct{}

func (videoRepoStub) CreateVideo(_ context.Context, m model.Video) (uuid.UUID, error) {
	return m.ID, nil
}
func (videoRepoStub) GetVideoByID(_ context.Context, _ uuid.UUID) (model.Video, error) {
	return model.Video{}, customErrors.ErrNotFound
}
func (videoRepoStub) UpdateVideo(_ context.Context, _ model.Video) error { return nil }
func (videoRepoStub) DeleteVideo(_ context.Context, _ uuid.UUID) error   { return nil }
func (videoRepoStub) ListVideos(_ context.Context, _ repo.VideoFilter) ([]model.Video, error) {
	return nil, nil
}

type storageStub struct{}

func (storageStub) Upload(_ context.Context, folder string, _ media.Upload) (string, error) {
	return "https://media.test/" + folder + "/" + uuid.NewString(), nil
}
func (storageStub) Delete(_ context.Context, _ string) error { return nil }

/* ──────────────────────────────── harness ──────────────────────────────── */

type testApp struct {
	router *gin.Engine
	users  *userRepoStub
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cfg := &config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     time.Minute,
		RefreshTokenTTL:    time.Hour,
		CookieDomain:       "",
	}

	users := &userRepoStub{users: map[uuid.UUID]model.User{}}
	posts := &postRepoStub{posts: map[uuid.UUID]model.Post{}}
	validate := validation.New()
	codec := apptoken.NewCodec(cfg)
	hasher := password.NewHasher("pepper")

	sessionSvc := session.New(users, codec, hasher, storageStub{}, validate)
	postSvc := content.NewPostService(posts, users, validate)
	videoSvc := content.NewVideoService(videoRepoStub{}, storageStub{}, validate)

	log := zap.NewNop()
	router := transport.NewRouter(cfg, log,
		sessionSvc,
		transport.NewAuthHandler(sessionSvc, cfg, log),
		transport.NewPostHandler(postSvc),
		transport.NewVideoHandler(videoSvc),
	)
	return &testApp{router: router, users: users}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) registerAndLogin(t *testing.T, username string) []*http.Cookie {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/users/register", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "Sup3rSecret",
		"fullName": "Test User",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = a.do(t, http.MethodPost, "/api/v1/users/login", gin.H{
		"identity": username,
		"password": "Sup3rSecret",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func cookieValue(cookies []*http.Cookie, name string) string {
	for _, c := range cookies {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

/* ──────────────────────────────── tests ──────────────────────────────── */

func TestLogin_SetsBothCookies(t *testing.T) {
	app := newTestApp(t)
	cookies := app.registerAndLogin(t, "alice")

	access := cookieValue(cookies, "access_token")
	refresh := cookieValue(cookies, "refresh_token")
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	require.NotEqual(t, access, refresh)
}

func TestGuard_RejectsMissingAndGarbageTokens(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/v1/users/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/users/me", nil,
		[]*http.Cookie{{Name: "access_token", Value: "garbage"}})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGuard_AcceptsCookieAndBearer(t *testing.T) {
	app := newTestApp(t)
	cookies := app.registerAndLogin(t, "alice")

	w := app.do(t, http.MethodGet, "/api/v1/users/me", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"username":"alice"`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+cookieValue(cookies, "access_token"))
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRefresh_RotationViaCookies(t *testing.T) {
	app := newTestApp(t)
	cookies := app.registerAndLogin(t, "alice")
	original := cookieValue(cookies, "refresh_token")

	w := app.do(t, http.MethodPost, "/api/v1/users/refresh-token", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	rotated := cookieValue(w.Result().Cookies(), "refresh_token")
	require.NotEmpty(t, rotated)
	require.NotEqual(t, original, rotated)

	// replaying the original refresh token must fail now
	w = app.do(t, http.MethodPost, "/api/v1/users/refresh-token", nil,
		[]*http.Cookie{{Name: "refresh_token", Value: original}})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefresh_FromBodyFallback(t *testing.T) {
	app := newTestApp(t)
	cookies := app.registerAndLogin(t, "alice")

	w := app.do(t, http.MethodPost, "/api/v1/users/refresh-token",
		gin.H{"refreshToken": cookieValue(cookies, "refresh_token")}, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRefresh_MissingToken(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodPost, "/api/v1/users/refresh-token", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_InvalidatesSession(t *testing.T) {
	app := newTestApp(t)
	cookies := app.registerAndLogin(t, "alice")

	w := app.do(t, http.MethodPost, "/api/v1/users/logout", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// the refresh token that was live before logout is revoked
	w = app.do(t, http.MethodPost, "/api/v1/users/refresh-token", nil, cookies)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPosts_ForbiddenAcrossUsers(t *testing.T) {
	app := newTestApp(t)
	cookiesA := app.registerAndLogin(t, "alice")
	cookiesB := app.registerAndLogin(t, "bobby")

	w := app.do(t, http.MethodPost, "/api/v1/posts", gin.H{"content": "hello"}, cookiesA)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data struct {
			ID uuid.UUID `json:"ID"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = app.do(t, http.MethodDelete, "/api/v1/posts/"+created.Data.ID.String(), nil, cookiesB)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodDelete, "/api/v1/posts/"+created.Data.ID.String(), nil, cookiesA)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodDelete, "/api/v1/posts/"+created.Data.ID.String(), nil, cookiesA)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogin_BadCredentialStatus(t *testing.T) {
	app := newTestApp(t)
	app.registerAndLogin(t, "alice")

	w := app.do(t, http.MethodPost, "/api/v1/users/login",
		gin.H{"identity": "alice", "password": "wrong"}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w2 := app.do(t, http.MethodPost, "/api/v1/users/login",
		gin.H{"identity": "nosuchuser", "password": "x"}, nil)
	require.Equal(t, http.StatusUnauthorized, w2.Code)
	require.JSONEq(t, w.Body.String(), w2.Body.String())
}

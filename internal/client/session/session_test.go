package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/prescreen/internal/client/client"
	"github.com/dmitrijs2005/prescreen/internal/client/models"
	"github.com/dmitrijs2005/prescreen/internal/client/notify"
	"github.com/dmitrijs2005/prescreen/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	rec      *models.SessionRecord
	loadErr  error
	saveErr  error
	clearErr error

	loads, saves, clears int
}

func (f *fakeRepo) Load(context.Context) (*models.SessionRecord, error) {
	f.loads++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.rec, nil
}

func (f *fakeRepo) Save(_ context.Context, rec models.SessionRecord) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.rec = &rec
	return nil
}

func (f *fakeRepo) Clear(context.Context) error {
	f.clears++
	if f.clearErr != nil {
		return f.clearErr
	}
	f.rec = nil
	return nil
}

type fakeAuth struct {
	loginResp *models.LoginResponse
	loginErr  error
	lastID    string
	lastPass  string

	registerResp *models.RegisterResponse
	registerErr  error
	registered   []models.RegisterRequest

	forgotResp  *models.ForgotIDResponse
	forgotErr   error
	forgotEmail string
}

func (f *fakeAuth) Login(_ context.Context, id, password string) (*models.LoginResponse, error) {
	f.lastID, f.lastPass = id, password
	return f.loginResp, f.loginErr
}

func (f *fakeAuth) Register(_ context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	f.registered = append(f.registered, req)
	return f.registerResp, f.registerErr
}

func (f *fakeAuth) ForgotID(_ context.Context, email string) (*models.ForgotIDResponse, error) {
	f.forgotEmail = email
	return f.forgotResp, f.forgotErr
}

var (
	applicant = models.User{ID: 1, Username: "APPLICANT-1", FullName: "Asha Rao", Role: models.RoleApplicant}
	staff     = models.User{ID: 2, Username: "STAFF-1", FullName: "Ravi Iyer", Role: models.RoleStaff}
)

func newStore(repo *fakeRepo, auth *fakeAuth) (*Store, *notify.Recorder) {
	rec := &notify.Recorder{}
	return NewStore(repo, auth, rec, logging.Discard()), rec
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "APPLICANT-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestRestore_NothingStored(t *testing.T) {
	repo := &fakeRepo{}
	s, _ := newStore(repo, &fakeAuth{})

	assert.False(t, s.Ready())

	res, err := s.Restore(context.Background())
	require.NoError(t, err)

	assert.Equal(t, RestoreAnonymous, res)
	assert.True(t, s.Ready())
	assert.Equal(t, Session{}, s.Snapshot())
	assert.Equal(t, 1, repo.loads)
}

func TestRestore_ValidRecord(t *testing.T) {
	u := staff
	repo := &fakeRepo{rec: &models.SessionRecord{Token: signedToken(t, time.Now().Add(time.Hour)), User: &u}}
	s, _ := newStore(repo, &fakeAuth{})

	res, err := s.Restore(context.Background())
	require.NoError(t, err)

	assert.Equal(t, RestoreAuthenticated, res)
	snap := s.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, models.RoleStaff, snap.Role)
	assert.Equal(t, "STAFF-1", snap.User.Username)
	assert.True(t, s.IsStaff())
	assert.Equal(t, repo.rec.Token, s.AccessToken(context.Background()))
}

func TestRestore_OpaqueTokenIsAccepted(t *testing.T) {
	u := applicant
	repo := &fakeRepo{rec: &models.SessionRecord{Token: "opaque", User: &u}}
	s, _ := newStore(repo, &fakeAuth{})

	res, err := s.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RestoreAuthenticated, res)
}

func TestRestore_ExpiredTokenIsCleared(t *testing.T) {
	u := applicant
	repo := &fakeRepo{rec: &models.SessionRecord{Token: signedToken(t, time.Now().Add(-time.Minute)), User: &u}}
	s, _ := newStore(repo, &fakeAuth{})

	res, err := s.Restore(context.Background())
	require.NoError(t, err)

	assert.Equal(t, RestoreExpired, res)
	assert.Equal(t, "expired", res.String())
	assert.False(t, s.Snapshot().IsAuthenticated)
	assert.Equal(t, 1, repo.clears)
	assert.Nil(t, repo.rec)
}

func TestRestore_RequiresTokenAndUser(t *testing.T) {
	u := applicant
	for name, rec := range map[string]*models.SessionRecord{
		"user only":  {User: &u},
		"token only": {Token: "t"},
	} {
		t.Run(name, func(t *testing.T) {
			repo := &fakeRepo{rec: rec}
			s, _ := newStore(repo, &fakeAuth{})

			res, err := s.Restore(context.Background())
			require.NoError(t, err)
			assert.Equal(t, RestoreAnonymous, res)
			assert.False(t, s.Snapshot().IsAuthenticated)
			assert.Equal(t, 1, repo.clears)
		})
	}
}

func TestRestore_LoadErrorStillMarksReady(t *testing.T) {
	repo := &fakeRepo{loadErr: errors.New("disk gone")}
	s, _ := newStore(repo, &fakeAuth{})

	res, err := s.Restore(context.Background())
	require.Error(t, err)
	assert.Equal(t, RestoreAnonymous, res)
	assert.True(t, s.Ready())
}

func TestLogin_SuccessPersistsToken(t *testing.T) {
	repo := &fakeRepo{}
	auth := &fakeAuth{loginResp: &models.LoginResponse{Token: "jwt-1", User: applicant}}
	s, rec := newStore(repo, auth)

	ok := s.Login(context.Background(), "  APPLICANT-1 ", "secret")
	require.True(t, ok)

	assert.Equal(t, "APPLICANT-1", auth.lastID)
	assert.Equal(t, "secret", auth.lastPass)
	require.NotNil(t, repo.rec)
	assert.Equal(t, "jwt-1", repo.rec.Token)
	assert.Equal(t, applicant, *repo.rec.User)
	assert.Equal(t, "jwt-1", s.AccessToken(context.Background()))
	assert.False(t, s.IsStaff())
	assert.Equal(t, []notify.Notification{{Level: notify.LevelSuccess, Message: "Welcome back, Asha Rao!"}}, rec.Drain())
}

func TestLogin_FailurePersistsNothing(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{name: "backend message", err: &client.APIError{Status: 401, Message: "Bad credentials"}, wantMsg: "Bad credentials"},
		{name: "no message", err: client.ErrUnavailable, wantMsg: "Invalid ID or Password"},
		{name: "non-json body", err: &client.APIError{Status: 502, Body: "<html>Bad Gateway</html>"}, wantMsg: "Invalid ID or Password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			s, rec := newStore(repo, &fakeAuth{loginErr: tt.err})

			ok := s.Login(context.Background(), "APPLICANT-1", "wrong")

			assert.False(t, ok)
			assert.Zero(t, repo.saves)
			assert.Nil(t, repo.rec)
			assert.Empty(t, s.AccessToken(context.Background()))
			assert.False(t, s.Snapshot().IsAuthenticated)
			assert.Equal(t, []string{tt.wantMsg}, rec.Messages())
		})
	}
}

func TestLogin_SaveFailureLeavesAnonymous(t *testing.T) {
	repo := &fakeRepo{saveErr: errors.New("read-only")}
	s, rec := newStore(repo, &fakeAuth{loginResp: &models.LoginResponse{Token: "jwt", User: applicant}})

	assert.False(t, s.Login(context.Background(), "APPLICANT-1", "secret"))
	assert.False(t, s.Snapshot().IsAuthenticated)
	assert.Equal(t, []string{"Invalid ID or Password"}, rec.Messages())
}

func TestRegister(t *testing.T) {
	valid := models.RegisterRequest{FullName: "Asha Rao", Email: "asha@example.org", Password: "secret1", Role: models.RoleApplicant}

	t.Run("success", func(t *testing.T) {
		auth := &fakeAuth{registerResp: &models.RegisterResponse{Message: "ok", UserID: "APPLICANT-9"}}
		s, rec := newStore(&fakeRepo{}, auth)

		id, ok := s.Register(context.Background(), valid)
		assert.True(t, ok)
		assert.Equal(t, "APPLICANT-9", id)
		assert.False(t, s.Snapshot().IsAuthenticated)
		assert.Equal(t, []string{"Registration successful! Please login."}, rec.Messages())
	})

	t.Run("backend rejects", func(t *testing.T) {
		auth := &fakeAuth{registerErr: &client.APIError{Status: 409, Message: "Email already registered"}}
		s, rec := newStore(&fakeRepo{}, auth)

		_, ok := s.Register(context.Background(), valid)
		assert.False(t, ok)
		assert.Equal(t, []string{"Email already registered"}, rec.Messages())
	})

	t.Run("fallback message", func(t *testing.T) {
		s, rec := newStore(&fakeRepo{}, &fakeAuth{registerErr: client.ErrUnavailable})

		_, ok := s.Register(context.Background(), valid)
		assert.False(t, ok)
		assert.Equal(t, []string{"Registration failed"}, rec.Messages())
	})

	t.Run("invalid form is not sent", func(t *testing.T) {
		auth := &fakeAuth{}
		s, rec := newStore(&fakeRepo{}, auth)

		bad := valid
		bad.Email = "nope"
		_, ok := s.Register(context.Background(), bad)
		assert.False(t, ok)
		assert.Empty(t, auth.registered)
		assert.Equal(t, []string{"email: must be a valid email address"}, rec.Messages())
	})
}

func TestLogout_ClearsEverything(t *testing.T) {
	repo := &fakeRepo{}
	s, rec := newStore(repo, &fakeAuth{loginResp: &models.LoginResponse{Token: "jwt", User: staff}})
	require.True(t, s.Login(context.Background(), "STAFF-1", "pw"))
	rec.Drain()

	s.Logout(context.Background())

	assert.Nil(t, repo.rec)
	assert.False(t, s.IsStaff())
	assert.Empty(t, s.AccessToken(context.Background()))
	assert.Equal(t, []string{"Logged out successfully"}, rec.Messages())
}

func TestLogout_StorageErrorStillSignsOut(t *testing.T) {
	repo := &fakeRepo{clearErr: errors.New("locked")}
	s, _ := newStore(repo, &fakeAuth{loginResp: &models.LoginResponse{Token: "jwt", User: staff}})
	require.True(t, s.Login(context.Background(), "STAFF-1", "pw"))

	s.Logout(context.Background())
	assert.False(t, s.Snapshot().IsAuthenticated)
}

func TestSnapshot_ReturnsCopy(t *testing.T) {
	s, _ := newStore(&fakeRepo{}, &fakeAuth{loginResp: &models.LoginResponse{Token: "jwt", User: applicant}})
	require.True(t, s.Login(context.Background(), "APPLICANT-1", "pw"))

	snap := s.Snapshot()
	snap.User.Role = models.RoleStaff

	assert.False(t, s.IsStaff())
}

func TestRecoverID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		auth := &fakeAuth{forgotResp: &models.ForgotIDResponse{UserID: "APPLICANT-3", FullName: "Asha Rao"}}
		s, rec := newStore(&fakeRepo{}, auth)

		resp, ok := s.RecoverID(context.Background(), " asha@example.org ")
		require.True(t, ok)
		assert.Equal(t, "APPLICANT-3", resp.UserID)
		assert.Equal(t, "asha@example.org", auth.forgotEmail)
		assert.Equal(t, []string{"User ID Found!"}, rec.Messages())
	})

	t.Run("unknown email", func(t *testing.T) {
		s, rec := newStore(&fakeRepo{}, &fakeAuth{forgotErr: client.ErrNotFound})

		_, ok := s.RecoverID(context.Background(), "who@example.org")
		assert.False(t, ok)
		assert.Equal(t, []string{"No account found with that email."}, rec.Messages())
	})

	t.Run("malformed email is not sent", func(t *testing.T) {
		auth := &fakeAuth{}
		s, _ := newStore(&fakeRepo{}, auth)

		_, ok := s.RecoverID(context.Background(), "nope")
		assert.False(t, ok)
		assert.Empty(t, auth.forgotEmail)
	})
}

package services

import (
	"testing"
	"time"

	"livestock-app/config"
	"livestock-app/dto"
	"livestock-app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) role(name string, permissions ...string) models.Role {
	f.t.Helper()
	role, err := NewRoleService(f.db).Create(f.ctx, dto.RoleRequest{Name: name})
	require.NoError(f.t, err)

	ids := []uint{}
	for _, p := range permissions {
		perm := models.Permission{Name: p}
		require.NoError(f.t, f.db.Where(models.Permission{Name: p}).FirstOrCreate(&perm).Error)
		ids = append(ids, perm.ID)
	}
	role, err = NewRoleService(f.db).ReplacePermissions(f.ctx, role.ID, dto.RolePermissionsRequest{PermissionIDs: ids})
	require.NoError(f.t, err)
	return *role
}

func TestUserCreateAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.db)
	keeper := f.role("KEEPER", "livestock.view", "livestock.manage")

	user, err := svc.Create(f.ctx, dto.UserRequest{
		Username: "keeper01",
		Name:     "Farm Keeper",
		Email:    "keeper@example.com",
		Password: "secret123",
		RoleIDs:  []uint{keeper.ID},
	}, testActor)
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret123", user.Password)
	assert.ElementsMatch(t, []string{"livestock.view", "livestock.manage"}, user.PermissionNames())

	_, err = svc.Create(f.ctx, dto.UserRequest{Username: "other", Name: "Other", Email: "keeper@example.com", Password: "secret123"}, testActor)
	requireFiberError(t, err, fiber.StatusConflict, MsgUserExists)

	_, err = svc.Create(f.ctx, dto.UserRequest{Username: "nopass", Name: "No Pass", Email: "nopass@example.com"}, testActor)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgPasswordRequired)

	found, err := svc.Authenticate(f.ctx, "keeper01", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = svc.Authenticate(f.ctx, "keeper@example.com", "wrong")
	requireFiberError(t, err, fiber.StatusUnauthorized, MsgInvalidLogin)

	_, err = svc.Authenticate(f.ctx, "nobody", "secret123")
	requireFiberError(t, err, fiber.StatusUnauthorized, MsgInvalidLogin)
}

func TestUserInactiveCannotLogin(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.db)
	inactive := false

	user, err := svc.Create(f.ctx, dto.UserRequest{
		Username: "locked",
		Name:     "Locked User",
		Email:    "locked@example.com",
		Password: "secret123",
		IsActive: &inactive,
	}, testActor)
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	_, err = svc.Authenticate(f.ctx, "locked", "secret123")
	requireFiberError(t, err, fiber.StatusUnauthorized, MsgUserInactive)
}

func TestUserUpdateKeepsPasswordWhenEmpty(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.db)
	keeper := f.role("KEEPER", "livestock.view")

	user, err := svc.Create(f.ctx, dto.UserRequest{
		Username: "keeper01",
		Name:     "Farm Keeper",
		Email:    "keeper@example.com",
		Password: "secret123",
		RoleIDs:  []uint{keeper.ID},
	}, testActor)
	require.NoError(t, err)

	updated, err := svc.Update(f.ctx, user.ID, dto.UserRequest{
		Username: "keeper01",
		Name:     "Head Keeper",
		Email:    "keeper@example.com",
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, "Head Keeper", updated.Name)
	assert.Len(t, updated.Roles, 1)

	_, err = svc.Authenticate(f.ctx, "keeper01", "secret123")
	require.NoError(t, err)

	updated, err = svc.Update(f.ctx, user.ID, dto.UserRequest{
		Username: "keeper01",
		Name:     "Head Keeper",
		Email:    "keeper@example.com",
		RoleIDs:  []uint{},
	}, testActor)
	require.NoError(t, err)
	assert.Empty(t, updated.Roles)
}

func TestRoleDeleteBlockedWhileAssigned(t *testing.T) {
	f := newFixture(t)
	roles := NewRoleService(f.db)
	keeper := f.role("KEEPER", "livestock.view")

	_, err := roles.Create(f.ctx, dto.RoleRequest{Name: "keeper"})
	requireFiberError(t, err, fiber.StatusConflict, MsgRoleExists)

	user, err := NewUserService(f.db).Create(f.ctx, dto.UserRequest{
		Username: "keeper01",
		Name:     "Farm Keeper",
		Email:    "keeper@example.com",
		Password: "secret123",
		RoleIDs:  []uint{keeper.ID},
	}, testActor)
	require.NoError(t, err)

	err = roles.Delete(f.ctx, keeper.ID)
	requireFiberError(t, err, fiber.StatusBadRequest, MsgRoleInUse)

	require.NoError(t, NewUserService(f.db).Delete(f.ctx, user.ID, testActor))
	require.NoError(t, roles.Delete(f.ctx, keeper.ID))

	_, err = roles.Get(f.ctx, keeper.ID)
	requireFiberError(t, err, fiber.StatusNotFound, MsgRoleNotFound)
}

func TestLoginIssuesSessionToken(t *testing.T) {
	config.JWTSecret = "test-secret"
	config.JWTExpiration = 3600

	f := newFixture(t)
	keeper := f.role("KEEPER", "livestock.view")
	_, err := NewUserService(f.db).Create(f.ctx, dto.UserRequest{
		Username: "keeper01",
		Name:     "Farm Keeper",
		Email:    "keeper@example.com",
		Password: "secret123",
		RoleIDs:  []uint{keeper.ID},
	}, testActor)
	require.NoError(t, err)

	auth := NewAuthService(f.db)
	result, err := auth.Login(f.ctx, "keeper@example.com", "secret123", "127.0.0.1", "go-test")
	require.NoError(t, err)
	assert.Equal(t, []string{"livestock.view"}, result.Permissions)
	assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, 5*time.Second)

	token, err := jwt.Parse(result.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, result.SessionID, claims["session_id"])
	assert.EqualValues(t, result.User.ID, claims["user_id"])

	var session models.UserSession
	require.NoError(t, f.db.Where("session_id = ?", result.SessionID).First(&session).Error)
	assert.True(t, session.IsActive)
	assert.Equal(t, "127.0.0.1", session.IPAddress)

	require.NoError(t, auth.Logout(f.ctx, result.SessionID))
	err = auth.Logout(f.ctx, result.SessionID)
	requireFiberError(t, err, fiber.StatusUnauthorized, "")
}

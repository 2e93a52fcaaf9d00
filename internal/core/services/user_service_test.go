package services_test

import (
	"context"
	"testing"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	portssvc "github.com/emprestafacil/loan_ledger_app/internal/core/ports/services"
	"github.com/emprestafacil/loan_ledger_app/internal/core/services"
	"github.com/emprestafacil/loan_ledger_app/internal/dto"
	"github.com/emprestafacil/loan_ledger_app/internal/repositories/memory"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	userSvc portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	repos := memory.NewRepositoryProvider(memory.NewStore())
	suite.userSvc = services.NewUserService(repos.UserRepo)
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    "ana@example.com",
		Password: "secret1",
		Name:     "Ana Souza",
		Phone:    "11 98765-4321",
	}
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestRegisterUser() {
	user, err := suite.userSvc.RegisterUser(suite.ctx, registerRequest())
	suite.Require().NoError(err)

	suite.NotEmpty(user.UserID)
	suite.Equal("ana@example.com", user.Email)
	suite.Equal(domain.ProviderLocal, user.AuthProvider)
	suite.False(user.IsVerified)

	// The password is stored hashed, never verbatim.
	suite.Require().NotNil(user.PasswordHash)
	suite.NotEqual("secret1", *user.PasswordHash)
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateEmail() {
	_, err := suite.userSvc.RegisterUser(suite.ctx, registerRequest())
	suite.Require().NoError(err)

	_, err = suite.userSvc.RegisterUser(suite.ctx, registerRequest())

	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(409, appErr.Code)
	suite.Equal("Este email já está cadastrado", appErr.Message)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	registered, err := suite.userSvc.RegisterUser(suite.ctx, registerRequest())
	suite.Require().NoError(err)

	user, err := suite.userSvc.AuthenticateUser(suite.ctx, "ana@example.com", "secret1")
	suite.Require().NoError(err)
	suite.Equal(registered.UserID, user.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	_, err := suite.userSvc.RegisterUser(suite.ctx, registerRequest())
	suite.Require().NoError(err)

	_, err = suite.userSvc.AuthenticateUser(suite.ctx, "ana@example.com", "wrong")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(401, appErr.Code)
	suite.Equal("Email ou senha inválidos", appErr.Message)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmail() {
	_, err := suite.userSvc.AuthenticateUser(suite.ctx, "ninguem@example.com", "whatever")

	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(401, appErr.Code)
	suite.Equal("Email ou senha inválidos", appErr.Message)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_OAuthOnlyAccount() {
	_, err := suite.userSvc.CreateOAuthUser(suite.ctx, "Ana Souza", "ana@example.com", string(domain.ProviderGoogle), "google-sub-1", true)
	suite.Require().NoError(err)

	_, err = suite.userSvc.AuthenticateUser(suite.ctx, "ana@example.com", "anything")

	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(401, appErr.Code)
}

func (suite *UserServiceTestSuite) TestCreateOAuthUser_ReusesByProviderIdentity() {
	first, err := suite.userSvc.CreateOAuthUser(suite.ctx, "Ana Souza", "ana@example.com", string(domain.ProviderGoogle), "google-sub-1", true)
	suite.Require().NoError(err)

	second, err := suite.userSvc.CreateOAuthUser(suite.ctx, "Ana Souza", "ana@example.com", string(domain.ProviderGoogle), "google-sub-1", true)
	suite.Require().NoError(err)

	suite.Equal(first.UserID, second.UserID)
}

func (suite *UserServiceTestSuite) TestCreateOAuthUser_LinksExistingLocalAccount() {
	local, err := suite.userSvc.RegisterUser(suite.ctx, registerRequest())
	suite.Require().NoError(err)

	linked, err := suite.userSvc.CreateOAuthUser(suite.ctx, "Ana Souza", "ana@example.com", string(domain.ProviderGoogle), "google-sub-1", true)
	suite.Require().NoError(err)

	suite.Equal(local.UserID, linked.UserID)
	suite.Equal(domain.ProviderGoogle, linked.AuthProvider)
	suite.True(linked.IsVerified)

	// The original password still works after linking.
	_, err = suite.userSvc.AuthenticateUser(suite.ctx, "ana@example.com", "secret1")
	suite.NoError(err)
}

func (suite *UserServiceTestSuite) TestUpdateUser_PatchesNonEmptyFields() {
	user, err := suite.userSvc.RegisterUser(suite.ctx, registerRequest())
	suite.Require().NoError(err)

	updated, err := suite.userSvc.UpdateUser(suite.ctx, user.UserID, dto.UpdateUserRequest{Name: "Ana Lima"})
	suite.Require().NoError(err)

	suite.Equal("Ana Lima", updated.Name)
	suite.Equal("11 98765-4321", updated.Phone)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

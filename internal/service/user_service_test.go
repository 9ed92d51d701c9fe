package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"userdir/internal/api"
	apperrors "userdir/internal/errors"
	"userdir/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, search string, offset, limit int) ([]model.User, error) {
	args := m.Called(ctx, search, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, search string) (int64, error) {
	args := m.Called(ctx, search)
	return args.Get(0).(int64), args.Error(1)
}

func TestUserService_CreateUser(t *testing.T) {
	tests := []struct {
		name           string
		userName       string
		email          string
		setupMock      func(*MockUserRepository)
		expectedError  error
		expectNoInsert bool
	}{
		{
			name:     "successful create",
			userName: "Ada",
			email:    "ada@x.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ada@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:     "email already taken",
			userName: "Ada",
			email:    "taken@x.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@x.com").Return(&model.User{Email: "taken@x.com"}, nil)
			},
			expectedError:  apperrors.ErrUserAlreadyExists,
			expectNoInsert: true,
		},
		{
			name:     "race lost to concurrent create",
			userName: "Ada",
			email:    "raced@x.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "raced@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil)
			user, err := svc.CreateUser(context.Background(), tt.userName, tt.email)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				if tt.expectNoInsert {
					mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				}
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.userName, user.Name)
				assert.Equal(t, tt.email, user.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateUser(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name          string
		id            uint
		newName       *string
		newEmail      *string
		setupMock     func(*MockUserRepository)
		expectedError error
		expectedUser  *model.User
	}{
		{
			name:     "user not found",
			id:       42,
			newName:  strPtr("Ada"),
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
		{
			name:     "changed email taken by another user",
			id:       1,
			newEmail: strPtr("taken@x.com"),
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Name: "Ada", Email: "ada@x.com"}, nil)
				m.On("FindByEmail", mock.Anything, "taken@x.com").Return(&model.User{ID: 2, Email: "taken@x.com"}, nil)
			},
			expectedError: apperrors.ErrEmailAlreadyExists,
		},
		{
			name:     "same email skips uniqueness check",
			id:       1,
			newName:  strPtr("Ada L."),
			newEmail: strPtr("ada@x.com"),
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Name: "Ada", Email: "ada@x.com"}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedUser: &model.User{ID: 1, Name: "Ada L.", Email: "ada@x.com"},
		},
		{
			name:    "partial update of name only",
			id:      1,
			newName: strPtr("Ada L."),
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Name: "Ada", Email: "ada@x.com"}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedUser: &model.User{ID: 1, Name: "Ada L.", Email: "ada@x.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil)
			user, err := svc.UpdateUser(context.Background(), tt.id, tt.newName, tt.newEmail)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.expectedUser.Name, user.Name)
				assert.Equal(t, tt.expectedUser.Email, user.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Run("deletes existing user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1}, nil)
		mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil)

		svc := NewUserService(mockRepo, nil)
		assert.NoError(t, svc.DeleteUser(context.Background(), 1))
		mockRepo.AssertExpectations(t)
	})

	t.Run("second delete reports not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, nil)
		assert.ErrorIs(t, svc.DeleteUser(context.Background(), 1), apperrors.ErrUserNotFound)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestUserService_GetUser(t *testing.T) {
	t.Run("maps record not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(999999)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, nil)
		user, err := svc.GetUser(context.Background(), 999999)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.Nil(t, user)
	})

	t.Run("returns user from repository", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Name: "Ada", Email: "ada@x.com"}, nil)

		svc := NewUserService(mockRepo, nil)
		user, err := svc.GetUser(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "Ada", user.Name)
	})
}

func TestUserService_ListUsers(t *testing.T) {
	tests := []struct {
		name           string
		page, limit    int
		total          int64
		expectedOffset int
		expectedPages  int
	}{
		{name: "first page", page: 1, limit: 10, total: 25, expectedOffset: 0, expectedPages: 3},
		{name: "second page of one", page: 2, limit: 1, total: 2, expectedOffset: 1, expectedPages: 2},
		{name: "exact multiple", page: 1, limit: 5, total: 10, expectedOffset: 0, expectedPages: 2},
		{name: "empty table", page: 1, limit: 10, total: 0, expectedOffset: 0, expectedPages: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockRepo.On("Count", mock.Anything, "").Return(tt.total, nil)
			mockRepo.On("List", mock.Anything, "", tt.expectedOffset, tt.limit).Return([]model.User{}, nil)

			svc := NewUserService(mockRepo, nil)
			_, pagination, err := svc.ListUsers(context.Background(), tt.page, tt.limit, "")

			require.NoError(t, err)
			assert.Equal(t, api.PaginationInfo{
				Page:       tt.page,
				Limit:      tt.limit,
				Total:      tt.total,
				TotalPages: tt.expectedPages,
			}, pagination)

			mockRepo.AssertExpectations(t)
		})
	}
}

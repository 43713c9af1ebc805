package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/legal-assistant/internal/models"
)

func TestStorage_RegisterAndFindUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	user := models.User{
		UID:          uuid.New().String(),
		Email:        "test@example.com",
		Username:     "testuser",
		PasswordHash: "hashedpassword",
		Role:         models.RoleUser,
		Plan:         models.PlanPremium,
		Active:       true,
	}

	uid, err := storage.RegisterUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, user.UID, uid)

	got, err := storage.FindByUID(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, "testuser", got.Username)
	assert.Equal(t, models.PlanPremium, got.Plan)
	assert.True(t, got.Active)
	assert.Nil(t, got.LastLoginAt)

	require.NoError(t, storage.TouchLastLogin(context.Background(), uid))
	got, err = storage.FindByUID(context.Background(), uid)
	require.NoError(t, err)
	assert.NotNil(t, got.LastLoginAt)
}

func TestStorage_FindByUID_NotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	_, err := storage.FindByUID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_CaseCRUD(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ownerUID := factory.CreateUser(t, "owner", "owner@example.com", "user", "free")
	strangerUID := factory.CreateUser(t, "stranger", "stranger@example.com", "user", "free")

	id, err := storage.CreateCase(context.Background(), models.Case{
		UserUID:     ownerUID,
		Title:       "Dispute with landlord",
		Description: "Security deposit withheld",
		CaseType:    "housing",
		Status:      "open",
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	t.Run("владелец читает дело", func(t *testing.T) {
		got, err := storage.ReadCase(context.Background(), id, ownerUID)
		require.NoError(t, err)
		assert.Equal(t, "Dispute with landlord", got.Title)
	})

	t.Run("чужое дело не читается", func(t *testing.T) {
		_, err := storage.ReadCase(context.Background(), id, strangerUID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("обновление владельцем", func(t *testing.T) {
		count, err := storage.UpdateCase(context.Background(), models.Case{
			Title:       "Dispute with landlord",
			Description: "Security deposit withheld",
			CaseType:    "housing",
			Status:      "in_progress",
		}, id, ownerUID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("обновление чужим пользователем", func(t *testing.T) {
		count, err := storage.UpdateCase(context.Background(), models.Case{
			Title: "hijack", CaseType: "housing", Status: "closed",
		}, id, strangerUID)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("удаление", func(t *testing.T) {
		count, err := storage.RemoveCase(context.Background(), id, ownerUID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		count, err = storage.RemoveCase(context.Background(), id, ownerUID)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestStorage_ListCases_Filters(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "owner", "owner@example.com", "user", "free")
	factory.CreateCase(t, uid, "Apartment lease dispute", "housing", "open")
	factory.CreateCase(t, uid, "Unpaid wages claim", "employment", "open")
	factory.CreateCase(t, uid, "Closed tax question", "tax", "closed")

	t.Run("все дела пользователя", func(t *testing.T) {
		got, err := storage.ListCases(context.Background(), models.CaseFilter{
			UserUID: uid, Limit: 10,
		})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("фильтр по статусу", func(t *testing.T) {
		got, err := storage.ListCases(context.Background(), models.CaseFilter{
			UserUID: uid, Status: "closed", Limit: 10,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Closed tax question", got[0].Title)
	})

	t.Run("поиск без учёта регистра", func(t *testing.T) {
		got, err := storage.ListCases(context.Background(), models.CaseFilter{
			UserUID: uid, Search: "LEASE", Limit: 10,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Apartment lease dispute", got[0].Title)
	})

	t.Run("пагинация", func(t *testing.T) {
		got, err := storage.ListCases(context.Background(), models.CaseFilter{
			UserUID: uid, Limit: 2,
		})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestStorage_JournalTagsRoundTrip(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "owner", "owner@example.com", "user", "free")

	id := factory.CreateJournalEntry(t, uid, "Hearing notes", "Judge asked for documents", []string{"court", "deadline"})

	got, err := storage.ReadJournalEntry(context.Background(), id, uid)
	require.NoError(t, err)
	assert.Equal(t, []string{"court", "deadline"}, got.Tags)

	noTags := factory.CreateJournalEntry(t, uid, "Quick note", "text", nil)
	got, err = storage.ReadJournalEntry(context.Background(), noTags, uid)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
}

func TestStorage_ChatMessages(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "owner", "owner@example.com", "user", "free")
	convID := factory.CreateConversation(t, uid, "Lease question")

	first, err := storage.CreateMessage(context.Background(), models.Message{
		ConversationID: convID,
		Sender:         models.SenderUser,
		Content:        "Can my landlord keep the deposit?",
	})
	require.NoError(t, err)

	_, err = storage.CreateMessage(context.Background(), models.Message{
		ConversationID: convID,
		Sender:         models.SenderAssistant,
		Content:        "Generally no, unless damages are documented.",
	})
	require.NoError(t, err)

	msgs, err := storage.ListMessages(context.Background(), convID, 10, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, first, msgs[0].ID)
	assert.Equal(t, models.SenderUser, msgs[0].Sender)
	assert.Equal(t, models.SenderAssistant, msgs[1].Sender)

	got, err := storage.ReadMessage(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, convID, got.ConversationID)
}

func TestStorage_RiskAssessments(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "owner", "owner@example.com", "user", "free")
	caseID := factory.CreateCase(t, uid, "Lease dispute", "housing", "open")

	_, err := storage.CreateRiskAssessment(context.Background(), models.StoredRiskAssessment{
		CaseID:    caseID,
		UserUID:   uid,
		RiskScore: 0.76,
		RiskLevel: models.RiskLevelHigh,
	})
	require.NoError(t, err)

	got, err := storage.ListRiskAssessments(context.Background(), caseID, uid)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 0.76, got[0].RiskScore, 1e-9)
	assert.Equal(t, models.RiskLevelHigh, got[0].RiskLevel)
}

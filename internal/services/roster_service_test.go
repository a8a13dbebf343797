package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gym-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usernames(users []models.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Username)
	}
	return out
}

func TestRosterClassify(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRosterService(db)
	ctx := context.Background()

	gym := models.Gym{Name: "North"}
	require.NoError(t, db.Create(&gym).Error)
	otherGym := models.Gym{Name: "South"}
	require.NoError(t, db.Create(&otherGym).Error)

	testutil.NewUser(t, db, "trainer", &gym.ID, true, "gym_trainer")
	testutil.NewUser(t, db, "member", &gym.ID, true, "gym_member")
	// two admin grants must still yield one row
	testutil.NewUser(t, db, "boss", &gym.ID, true, "gym_manager", "general_gym_manager")
	testutil.NewUser(t, db, "gone", &gym.ID, false)
	testutil.NewUser(t, db, "gone-trainer", &gym.ID, false, "gym_trainer")
	testutil.NewUser(t, db, "elsewhere", &otherGym.ID, true, "gym_trainer")

	t.Run("active by default", func(t *testing.T) {
		roster, err := svc.Classify(ctx, gym.ID, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"boss", "trainer"}, usernames(roster.Admins))
		assert.Equal(t, []string{"member"}, usernames(roster.Members))
	})

	t.Run("deactivated", func(t *testing.T) {
		admins, err := svc.Admins(ctx, gym.ID, StatusDeactivated)
		require.NoError(t, err)
		assert.Equal(t, []string{"gone-trainer"}, usernames(admins))

		members, err := svc.Members(ctx, gym.ID, StatusDeactivated)
		require.NoError(t, err)
		assert.Equal(t, []string{"gone"}, usernames(members))
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := svc.Members(ctx, gym.ID, "sleeping")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("empty gym", func(t *testing.T) {
		roster, err := svc.Classify(ctx, uuid.New(), StatusActive)
		require.NoError(t, err)
		assert.Empty(t, roster.Admins)
		assert.Empty(t, roster.Members)
	})
}

func TestRosterIsStaff(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRosterService(db)
	ctx := context.Background()

	gym := models.Gym{Name: "North"}
	require.NoError(t, db.Create(&gym).Error)
	otherGym := models.Gym{Name: "South"}
	require.NoError(t, db.Create(&otherGym).Error)

	trainer := testutil.NewUser(t, db, "trainer", &gym.ID, true, "gym_trainer")
	member := testutil.NewUser(t, db, "member", &gym.ID, true, "gym_member")
	general := testutil.NewUser(t, db, "general", &otherGym.ID, true, "general_gym_manager")
	foreign := testutil.NewUser(t, db, "foreign", &otherGym.ID, true, "gym_manager")

	tests := []struct {
		name string
		user models.User
		want bool
	}{
		{"trainer of the gym", trainer, true},
		{"plain member", member, false},
		{"manager of all gyms", general, true},
		{"manager of another gym", foreign, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := svc.IsStaff(ctx, tt.user.ID, gym.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

package curator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jacksonkontny/goodvibes/internal/models"
)

func TestTallyWeighsRepliesByNetVotes(t *testing.T) {
	replies := []models.Post{
		{Author: "a", Body: "yes", NetVotes: 0},
		{Author: "b", Body: "no", NetVotes: 2},
	}
	tally := Tally(replies, false)
	assert.Equal(t, 1, tally.YesWeight)
	assert.Equal(t, 3, tally.NoWeight)
}

func TestTallyIgnoresNonVotes(t *testing.T) {
	replies := []models.Post{
		{Author: "a", Body: "great post, keep it up!", NetVotes: 5},
		{Author: "b", Body: "Yes! Totally agree.", NetVotes: 0},
		{Author: "c", Body: "no.", NetVotes: 0},
	}
	tally := Tally(replies, false)
	assert.Equal(t, 1, tally.YesWeight)
	assert.Equal(t, 1, tally.NoWeight)
}

func TestTallyNegativeWeights(t *testing.T) {
	// A heavily downvoted vote counts against its own side unless clamping
	// is enabled.
	replies := []models.Post{{Author: "a", Body: "yes", NetVotes: -3}}

	tally := Tally(replies, false)
	assert.Equal(t, -2, tally.YesWeight)

	tally = Tally(replies, true)
	assert.Equal(t, 0, tally.YesWeight)
}

func TestIsVerifiedPositiveByCommentVotes(t *testing.T) {
	botComment := models.Post{Author: "bot", NetVotes: 1}
	assert.True(t, IsVerifiedPositive(botComment, VoteTally{}))
}

func TestIsVerifiedPositiveByReplies(t *testing.T) {
	botComment := models.Post{Author: "bot", NetVotes: 0}

	assert.False(t, IsVerifiedPositive(botComment, VoteTally{YesWeight: 1, NoWeight: 3}))
	assert.True(t, IsVerifiedPositive(botComment, VoteTally{YesWeight: 2, NoWeight: 1}))
	// A tie is not a confirmation.
	assert.False(t, IsVerifiedPositive(botComment, VoteTally{YesWeight: 1, NoWeight: 1}))
}

func TestReplyWords(t *testing.T) {
	words := replyWords("Yes!! I think so... really, YES.")
	assert.True(t, words["yes"])
	assert.False(t, words["no"])
}

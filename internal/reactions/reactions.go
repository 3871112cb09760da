// Package reactions implements the toggle-like primitive and the score
// aggregation shared by beers, locations, posts, reviews and replies.
package reactions

import (
	"brewnet-backend/internal/apperror"
	"brewnet-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reaction bucket names accepted by posts.
const (
	KindCheers      = "salud"
	KindRecommended = "recomendado"
	KindLike        = "meGusta"
)

// Contains reports whether userID is a member of the set.
func Contains(set []primitive.ObjectID, userID primitive.ObjectID) bool {
	for _, id := range set {
		if id == userID {
			return true
		}
	}
	return false
}

// Toggle flips the user's membership in a likes set. It returns the new
// set and whether the user was added. Toggling twice restores the
// original membership.
func Toggle(set []primitive.ObjectID, userID primitive.ObjectID) ([]primitive.ObjectID, bool) {
	if Contains(set, userID) {
		return remove(set, userID), false
	}
	return append(set, userID), true
}

// Remove is the strict unlike: it fails when the user is not in the set.
func Remove(set []primitive.ObjectID, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	if !Contains(set, userID) {
		return set, apperror.New(apperror.NotDone, "no habías dado like")
	}
	return remove(set, userID), nil
}

func remove(set []primitive.ObjectID, userID primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(set))
	for _, id := range set {
		if id != userID {
			out = append(out, id)
		}
	}
	return out
}

// bucket resolves a reaction kind to its bucket inside r.
func bucket(r *models.Reactions, kind string) (*models.ReactionBucket, error) {
	switch kind {
	case KindCheers:
		return &r.Cheers, nil
	case KindRecommended:
		return &r.Recommended, nil
	case KindLike:
		return &r.Like, nil
	default:
		return nil, apperror.New(apperror.Validation, "tipo de reacción inválido")
	}
}

// React adds the user to the named bucket. It is strict: a second
// reaction of the same kind by the same user fails. Count and user set
// are kept in lockstep.
func React(r *models.Reactions, kind string, userID primitive.ObjectID) error {
	b, err := bucket(r, kind)
	if err != nil {
		return err
	}
	if Contains(b.Users, userID) {
		return apperror.New(apperror.AlreadyDone, "ya reaccionaste a este post")
	}
	b.Users = append(b.Users, userID)
	b.Count = len(b.Users)
	return nil
}

// Unreact removes the user from the named bucket. It is strict: undoing
// an absent reaction fails.
func Unreact(r *models.Reactions, kind string, userID primitive.ObjectID) error {
	b, err := bucket(r, kind)
	if err != nil {
		return err
	}
	if !Contains(b.Users, userID) {
		return apperror.New(apperror.NotDone, "no habías reaccionado a este post")
	}
	b.Users = remove(b.Users, userID)
	b.Count = len(b.Users)
	return nil
}

// Average is the arithmetic mean of a beer's rating ledger, 0 when empty.
func Average(ratings []models.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Value
	}
	return float64(sum) / float64(len(ratings))
}

// AverageScores folds every location comment's score into a mean, 0 when
// there are no comments.
func AverageScores(comments []models.LocationReview) float64 {
	if len(comments) == 0 {
		return 0
	}
	sum := 0
	for _, c := range comments {
		sum += c.Score
	}
	return float64(sum) / float64(len(comments))
}

package github

import (
	"encoding/json"
	"fmt"

	"mergebot/internal/model"
)

// ParseUser normalizes a raw GitHub user object into a model.User.
func ParseUser(raw json.RawMessage) (model.User, error) {
	var u userPayload
	if err := json.Unmarshal(raw, &u); err != nil {
		return model.User{}, fmt.Errorf("failed to parse user: %w", err)
	}
	if u.ID == 0 {
		return model.User{}, fmt.Errorf("user payload missing id")
	}
	return model.User{
		Xref:      u.ID,
		Login:     u.Login,
		AvatarURL: u.AvatarURL,
	}, nil
}

// ParsePull normalizes a raw GitHub pull request object into a PrSnapshot.
func ParsePull(raw json.RawMessage) (model.PrSnapshot, error) {
	var p pullPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return model.PrSnapshot{}, fmt.Errorf("failed to parse pull request: %w", err)
	}
	if p.Number == 0 {
		return model.PrSnapshot{}, fmt.Errorf("pull request payload missing number")
	}
	return normalizePull(p), nil
}

func normalizePull(p pullPayload) model.PrSnapshot {
	return model.PrSnapshot{
		Number:       p.Number,
		Title:        p.Title,
		Body:         p.Body,
		TargetBranch: p.Base.Ref,
		HeadSHA:      p.Head.SHA,
		State:        p.State,
		Author: model.User{
			Xref:      p.User.ID,
			Login:     p.User.Login,
			AvatarURL: p.User.AvatarURL,
		},
	}
}

package dto

import "mentorlink/internal/usecase"

type ProfileResponse struct {
	Bio       string   `json:"bio"`
	Skills    []string `json:"skills"`
	Interests []string `json:"interests"`
}

func NewProfileResponse(v usecase.ProfileView) ProfileResponse {
	skills := v.Skills
	if skills == nil {
		skills = []string{}
	}
	interests := v.Interests
	if interests == nil {
		interests = []string{}
	}
	return ProfileResponse{Bio: v.Bio, Skills: skills, Interests: interests}
}

package server

import (
	"time"

	"devconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

type upsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills"`
	YouTube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	LinkedIn       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// GetMyProfile handles GET /api/profile/me
// @Summary Current user's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /profile/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := s.profileService.GetMine(ctx, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profile
// @Summary Create or update profile
// @Description Creates the profile when none exists, otherwise updates only the supplied fields
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body upsertProfileRequest true "Profile fields; skills is comma separated"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /profile [post]
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req upsertProfileRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, _, err := s.profileService.Upsert(ctx, service.UpsertProfileInput{
		UserID:         currentUserID(c),
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		Status:         req.Status,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		YouTube:        req.YouTube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		LinkedIn:       req.LinkedIn,
		Instagram:      req.Instagram,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// ListProfiles handles GET /api/profile
// @Summary List profiles
// @Tags profile
// @Produce json
// @Success 200 {array} models.Profile
// @Router /profile [get]
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	profiles, err := s.profileService.List(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profiles)
}

// GetProfileByUserID handles GET /api/profile/user/:user_id
// @Summary Profile by user id
// @Tags profile
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /profile/user/{user_id} [get]
func (s *Server) GetProfileByUserID(c *fiber.Ctx) error {
	userID, err := parseID(c, "user_id", "Profile not found", fiber.StatusBadRequest)
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := s.profileService.GetByUserID(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile
// @Summary Delete profile, posts and account
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{msg=string}
// @Failure 500 {string} string
// @Router /profile [delete]
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	in := service.DeleteAccountInput{UserID: currentUserID(c)}
	in.TokenID, _ = c.Locals(localTokenID).(string)
	in.TokenExpiry, _ = c.Locals(localTokenExpiry).(time.Time)

	if err := s.profileService.DeleteAccount(ctx, in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "User removed"})
}

// AddExperience handles PUT /api/profile/experience
// @Summary Add experience
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body experienceRequest true "Experience"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /profile/experience [put]
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req experienceRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := s.profileService.AddExperience(ctx, currentUserID(c), service.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// RemoveExperience handles DELETE /api/profile/experience/:exp_id
// @Summary Remove experience
// @Description An unknown id leaves the profile unchanged
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param exp_id path string true "Experience ID"
// @Success 200 {object} models.Profile
// @Router /profile/experience/{exp_id} [delete]
func (s *Server) RemoveExperience(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := s.profileService.RemoveExperience(ctx, currentUserID(c), c.Params("exp_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// AddEducation handles PUT /api/profile/education
// @Summary Add education
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body educationRequest true "Education"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /profile/education [put]
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req educationRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := s.profileService.AddEducation(ctx, currentUserID(c), service.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// RemoveEducation handles DELETE /api/profile/education/:edu_id
// @Summary Remove education
// @Description An unknown id leaves the profile unchanged
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param edu_id path string true "Education ID"
// @Success 200 {object} models.Profile
// @Router /profile/education/{edu_id} [delete]
func (s *Server) RemoveEducation(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := s.profileService.RemoveEducation(ctx, currentUserID(c), c.Params("edu_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// GetGithubRepos handles GET /api/profile/github/:username
// @Summary GitHub repositories
// @Tags profile
// @Produce json
// @Param username path string true "GitHub username"
// @Success 200 {array} github.Repo
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/github/{username} [get]
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	// The GitHub client enforces its own timeout.
	repos, err := s.profileService.GithubRepos(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondResourceError(c, err)
	}
	return c.JSON(repos)
}

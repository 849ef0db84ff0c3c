package jobapi

import (
	"strconv"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/application"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobsrv"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// UsernameHeader carries the acting user. Authentication happens upstream.
const UsernameHeader = "X-Username"

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ListJobs lists jobs, filtered by the optional query parameters
// GET /api/jobs?min_salary=&min_equity=&title=
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	criteria, err := parseFilterCriteria(c)
	if err != nil {
		return err
	}

	jobs, err := h.service.ListJobs(c.UserContext(), username(c), criteria)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// ListJobsPage lists one page of jobs
// GET /api/jobs/page?page=&page_size=
func (h *Handlers) ListJobsPage(c *fiber.Ctx) error {
	jobs, err := h.service.GetJobsPage(c.UserContext(), username(c), parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// GetJobByID retrieves a job with its company
// GET /api/jobs/:id
func (h *Handlers) GetJobByID(c *fiber.Ctx) error {
	jobID, err := parseJobID(c)
	if err != nil {
		return err
	}

	detail, err := h.service.GetJob(c.UserContext(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(detail)
}

// JobExists answers 200 or 404 without loading the job
// HEAD /api/jobs/:id
func (h *Handlers) JobExists(c *fiber.Ctx) error {
	jobID, err := parseJobID(c)
	if err != nil {
		return err
	}

	found, err := h.service.JobExists(c.UserContext(), jobID)
	if err != nil {
		return err
	}
	if !found {
		return job.ErrJobNotFound().WithDetail("id", jobID.String())
	}

	return c.SendStatus(fiber.StatusOK)
}

// GetJobStats retrieves application statistics for a job
// GET /api/jobs/:id/stats
func (h *Handlers) GetJobStats(c *fiber.Ctx) error {
	jobID, err := parseJobID(c)
	if err != nil {
		return err
	}

	stats, err := h.service.GetJobStats(c.UserContext(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

// CreateJob creates a new job posting
// POST /api/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrValidationFailed().WithDetail("parse_error", err.Error())
	}

	created, err := h.service.CreateJob(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateJob partially updates a job
// PATCH /api/jobs/:id
func (h *Handlers) UpdateJob(c *fiber.Ctx) error {
	jobID, err := parseJobID(c)
	if err != nil {
		return err
	}

	var req job.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrValidationFailed().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateJob(c.UserContext(), jobID, req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// DeleteJob removes a job and its applications
// DELETE /api/jobs/:id
func (h *Handlers) DeleteJob(c *fiber.Ctx) error {
	jobID, err := parseJobID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteJob(c.UserContext(), jobID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"deleted": jobID})
}

// Apply records the acting user's application
// POST /api/jobs/:id/applications
func (h *Handlers) Apply(c *fiber.Ctx) error {
	jobID, err := parseJobID(c)
	if err != nil {
		return err
	}

	var req application.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidState().WithDetail("parse_error", err.Error())
	}

	applied, err := h.service.ApplyToJob(c.UserContext(), jobID, username(c), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(application.ApplyResponse{Applied: *applied})
}

// Withdraw removes the acting user's application
// DELETE /api/jobs/:id/applications
func (h *Handlers) Withdraw(c *fiber.Ctx) error {
	jobID, err := parseJobID(c)
	if err != nil {
		return err
	}

	if err := h.service.WithdrawApplication(c.UserContext(), jobID, username(c)); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ============================================================================
// Request parsing
// ============================================================================

func username(c *fiber.Ctx) kernel.Username {
	return kernel.NewUsername(c.Get(UsernameHeader))
}

func parseJobID(c *fiber.Ctx) (kernel.JobID, error) {
	raw := c.Params("id")
	id, err := kernel.ParseJobID(raw)
	if err != nil {
		return 0, job.ErrInvalidID().WithDetail("id", raw)
	}
	return id, nil
}

// parseFilterCriteria reads the optional listing filters. Absent or empty
// parameters leave the criterion unset.
func parseFilterCriteria(c *fiber.Ctx) (job.FilterCriteria, error) {
	criteria := job.FilterCriteria{Title: c.Query("title")}

	if raw := c.Query("min_salary"); raw != "" {
		salary, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return criteria, job.ErrValidationFailed().WithDetail("min_salary", raw)
		}
		criteria.MinSalary = &salary
	}

	if raw := c.Query("min_equity"); raw != "" {
		equity, err := decimal.NewFromString(raw)
		if err != nil {
			return criteria, job.ErrValidationFailed().WithDetail("min_equity", raw)
		}
		criteria.MinEquity = &equity
	}

	return criteria, nil
}

// parsePaginationOptions extracts pagination options from query parameters
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	}.Normalize()
}

// RegisterRoutes registers all job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers) {
	api := app.Group("/api/jobs")

	api.Get("/", handlers.ListJobs)
	api.Get("/page", handlers.ListJobsPage)
	api.Post("/", handlers.CreateJob)

	// Get also answers HEAD, so the cheaper check is registered first
	api.Head("/:id", handlers.JobExists)
	api.Get("/:id", handlers.GetJobByID)
	api.Get("/:id/stats", handlers.GetJobStats)
	api.Patch("/:id", handlers.UpdateJob)
	api.Delete("/:id", handlers.DeleteJob)

	api.Post("/:id/applications", handlers.Apply)
	api.Delete("/:id/applications", handlers.Withdraw)
}

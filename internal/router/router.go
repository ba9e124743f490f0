package router

import (
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/st-united/AICP-API-sub001/internal/config"
	"github.com/st-united/AICP-API-sub001/internal/handlers"
	"github.com/st-united/AICP-API-sub001/internal/services"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitExceeded(c *gin.Context, info ratelimit.Info) {
	c.String(429, "Too many requests. Try again later.")
}

func Setup(log *zap.Logger, db *gorm.DB) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	// Services and handlers
	answerService := services.NewAnswerService(db, log)
	submissionService := services.NewSubmissionService(db, log)
	planningService := services.NewPlanningService(db, log)
	bookingService := services.NewBookingService(db, log)

	examHandler := handlers.NewExamHandler(log, answerService, submissionService)
	spotHandler := handlers.NewSpotHandler(log, planningService, bookingService)

	// Booking endpoints get a per-client rate limit; a stuck retry loop on
	// a contended spot would otherwise hammer the conditional update.
	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: uint(config.Conf.Booking.RatePerMinute),
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: rateLimitExceeded,
		KeyFunc:      keyFunc,
	})

	api := router.Group("/api")
	{
		exams := api.Group("/exams")
		{
			exams.POST("", examHandler.StartExam)
			exams.PUT("/:id/answers", examHandler.SaveAnswer)
			exams.POST("/:id/submit", examHandler.SubmitExam)
			exams.GET("/:id/result", examHandler.GetResult)
		}

		mentors := api.Group("/mentors")
		{
			mentors.POST("/:id/schedule", spotHandler.GenerateSchedule)
			mentors.GET("/:id/spots", spotHandler.ListSpots)
		}

		spots := api.Group("/spots")
		{
			spots.POST("/:id/book", limiter, spotHandler.BookSpot)
			spots.POST("/:id/cancel", limiter, spotHandler.CancelSpot)
		}
	}

	return router
}

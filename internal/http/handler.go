package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/fleetadmin/internal/http/middleware"
	"github.com/nurpe/fleetadmin/internal/model"
	"github.com/nurpe/fleetadmin/internal/service"
)

type Handler struct {
	auth          *service.AuthService
	users         *service.UserService
	vehicles      *service.VehicleService
	rides         *service.RideService
	news          *service.NewsService
	notifications *service.NotificationService
	garbage       *service.GarbageService
	dashboard     *service.DashboardService
	reports       *service.ReportService
	log           zerolog.Logger
}

func NewHandler(
	auth *service.AuthService,
	users *service.UserService,
	vehicles *service.VehicleService,
	rides *service.RideService,
	news *service.NewsService,
	notifications *service.NotificationService,
	garbage *service.GarbageService,
	dashboard *service.DashboardService,
	reports *service.ReportService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		auth:          auth,
		users:         users,
		vehicles:      vehicles,
		rides:         rides,
		news:          news,
		notifications: notifications,
		garbage:       garbage,
		dashboard:     dashboard,
		reports:       reports,
		log:           log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.POST("/auth/login", h.login)
	router.GET("/users", h.publicUsers)
	router.GET("/news", h.listNews)

	authed := router.Group("/")
	authed.Use(authMiddleware)
	authed.POST("/auth/change-email", h.changeEmail)
	authed.POST("/auth/change-password", h.changePassword)
	authed.GET("/notifications", h.listNotifications)
	authed.PATCH("/notifications/:id/read", h.markNotificationRead)
	authed.GET("/rides/mine", h.listMyRides)
	authed.POST("/garbage", h.recordGarbage)

	admin := router.Group("/admin")
	admin.Use(authMiddleware, middleware.AdminOnly())
	admin.GET("/drivers", h.listDrivers)
	admin.POST("/drivers", h.createDriver)
	admin.GET("/users/:id", h.getUser)
	admin.PUT("/users/:id", h.updateUser)
	admin.DELETE("/users/:id", h.deleteUser)
	admin.GET("/vehicles", h.listVehicles)
	admin.POST("/vehicles", h.createVehicle)
	admin.GET("/vehicles/:id", h.getVehicle)
	admin.PUT("/vehicles/:id", h.updateVehicle)
	admin.DELETE("/vehicles/:id", h.deleteVehicle)
	admin.GET("/rides", h.listRides)
	admin.POST("/rides", h.assignRide)
	admin.GET("/rides/:id", h.getRide)
	admin.PATCH("/rides/:id/status", h.updateRideStatus)
	admin.DELETE("/rides/:id", h.deleteRide)
	admin.POST("/news", h.createNews)
	admin.GET("/news/:id", h.getNews)
	admin.PUT("/news/:id", h.updateNews)
	admin.DELETE("/news/:id", h.deleteNews)
	admin.GET("/garbage", h.listGarbage)
	admin.DELETE("/garbage/:id", h.deleteGarbage)
	admin.GET("/dashboard", h.dashboardSummary)
	admin.GET("/reports/table", h.reportTable)
	admin.GET("/reports/:format", h.exportReport)
}

type coordinatePayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (p *coordinatePayload) toModel() *model.Coordinate {
	if p == nil {
		return nil
	}
	return &model.Coordinate{Latitude: p.Latitude, Longitude: p.Longitude}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email address."})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email address."})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "No user found with this email."})
		case errors.Is(err, service.ErrWrongPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Incorrect password."})
		default:
			h.log.Error().Err(err).Msg("login failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": result.Token, "user": result.User})
}

type changeEmailRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h *Handler) changeEmail(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req changeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.auth.ChangeEmail(c.Request.Context(), principal, req.Email); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email updated"})
}

type changePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *Handler) changePassword(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), principal, req.Password); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// publicUsers keeps the legacy contract: an empty collection is a 404 with a
// message body, not an empty array.
func (h *Handler) publicUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No users found"})
		return
	}
	c.JSON(http.StatusOK, users)
}

type createDriverRequest struct {
	FirstName string             `json:"firstName" binding:"required"`
	LastName  string             `json:"lastName" binding:"required"`
	UserName  string             `json:"userName" binding:"required"`
	Email     string             `json:"email" binding:"required"`
	Password  string             `json:"password" binding:"required"`
	Address   string             `json:"address" binding:"required"`
	Location  *coordinatePayload `json:"location"`
}

func (h *Handler) createDriver(c *gin.Context) {
	var req createDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driver, err := h.users.CreateDriver(c.Request.Context(), service.CreateDriverInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserName:  req.UserName,
		Email:     req.Email,
		Password:  req.Password,
		Address:   req.Address,
		Location:  req.Location.toModel(),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, driver)
}

func (h *Handler) listDrivers(c *gin.Context) {
	drivers, err := h.users.ListDrivers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateUserRequest struct {
	FirstName *string            `json:"firstName"`
	LastName  *string            `json:"lastName"`
	UserName  *string            `json:"userName"`
	Email     *string            `json:"email"`
	Status    *string            `json:"status"`
	Address   *string            `json:"address"`
	Location  *coordinatePayload `json:"location"`
	PushToken *string            `json:"pushToken"`
}

func (h *Handler) updateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.users.UpdateUser(c.Request.Context(), id, model.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserName:  req.UserName,
		Email:     req.Email,
		Status:    req.Status,
		Address:   req.Address,
		Location:  req.Location.toModel(),
		PushToken: req.PushToken,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

type createVehicleRequest struct {
	VehicleNo       string `json:"vehicleNo" binding:"required"`
	Condition       string `json:"condition" binding:"required"`
	KmDone          int64  `json:"kmDone"`
	LastServiceDate string `json:"lastServiceDate"`
}

func (h *Handler) createVehicle(c *gin.Context) {
	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle, err := h.vehicles.CreateVehicle(c.Request.Context(), service.CreateVehicleInput{
		VehicleNo:       req.VehicleNo,
		Condition:       req.Condition,
		KmDone:          req.KmDone,
		LastServiceDate: req.LastServiceDate,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func (h *Handler) listVehicles(c *gin.Context) {
	vehicles, err := h.vehicles.ListVehicles(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func (h *Handler) getVehicle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	vehicle, err := h.vehicles.GetVehicle(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

type updateVehicleRequest struct {
	VehicleNo       *string `json:"vehicleNo"`
	Condition       *string `json:"condition"`
	KmDone          *int64  `json:"kmDone"`
	LastServiceDate *string `json:"lastServiceDate"`
	Status          *string `json:"status"`
}

func (h *Handler) updateVehicle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := model.VehicleUpdate{
		VehicleNo:   req.VehicleNo,
		Condition:   req.Condition,
		KmDone:      req.KmDone,
		LastService: req.LastServiceDate,
	}
	if req.Status != nil {
		status := model.VehicleStatus(*req.Status)
		update.Status = &status
	}

	if err := h.vehicles.UpdateVehicle(c.Request.Context(), id, update); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle updated"})
}

func (h *Handler) deleteVehicle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.vehicles.DeleteVehicle(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted"})
}

type assignRideRequest struct {
	DriverID      string             `json:"driverId" binding:"required"`
	VehicleNo     string             `json:"vehicleNo" binding:"required"`
	StartLocation *coordinatePayload `json:"startLocation" binding:"required"`
	EndLocation   *coordinatePayload `json:"endLocation" binding:"required"`
	RideTime      string             `json:"rideTime" binding:"required"`
	UserID        *string            `json:"userId"`
}

func (h *Handler) assignRide(c *gin.Context) {
	var req assignRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	driverID, err := uuid.Parse(req.DriverID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid driverId"})
		return
	}

	input := service.AssignRideInput{
		DriverID:      driverID,
		VehicleNo:     req.VehicleNo,
		StartLocation: req.StartLocation.toModel(),
		EndLocation:   req.EndLocation.toModel(),
		RideTime:      req.RideTime,
	}
	if req.UserID != nil {
		userID, err := uuid.Parse(*req.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
			return
		}
		input.UserID = &userID
	}

	ride, err := h.rides.AssignRide(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ride)
}

func (h *Handler) listRides(c *gin.Context) {
	rides, err := h.rides.ListRides(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rides)
}

func (h *Handler) listMyRides(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	rides, err := h.rides.ListRidesForDriver(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rides)
}

func (h *Handler) getRide(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ride, err := h.rides.GetRide(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ride)
}

type updateRideStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) updateRideStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateRideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.rides.UpdateRideStatus(c.Request.Context(), id, model.RideStatus(req.Status)); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ride updated"})
}

func (h *Handler) deleteRide(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.rides.DeleteRide(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ride deleted"})
}

type newsRequest struct {
	Heading string `json:"heading" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (h *Handler) createNews(c *gin.Context) {
	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.news.CreateNews(c.Request.Context(), req.Heading, req.Content)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) listNews(c *gin.Context) {
	items, err := h.news.ListNews(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) getNews(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.news.GetNews(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type updateNewsRequest struct {
	Heading *string `json:"heading"`
	Content *string `json:"content"`
}

func (h *Handler) updateNews(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.news.UpdateNews(c.Request.Context(), id, model.NewsUpdate{
		Heading: req.Heading,
		Content: req.Content,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "news updated"})
}

func (h *Handler) deleteNews(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.news.DeleteNews(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "news deleted"})
}

func (h *Handler) listNotifications(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	notifications, err := h.notifications.ListForUser(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *Handler) markNotificationRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.notifications.MarkRead(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification read"})
}

type garbageRequest struct {
	RideID     string   `json:"rideId" binding:"required"`
	Categories []string `json:"categories" binding:"required"`
}

func (h *Handler) recordGarbage(c *gin.Context) {
	var req garbageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rideID, err := uuid.Parse(req.RideID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rideId"})
		return
	}

	record, err := h.garbage.RecordCategories(c.Request.Context(), rideID, req.Categories)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handler) listGarbage(c *gin.Context) {
	records, err := h.garbage.ListRecords(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) deleteGarbage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.garbage.DeleteRecord(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "garbage record deleted"})
}

func (h *Handler) dashboardSummary(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("dashboard summary failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) reportTable(c *gin.Context) {
	reportType, err := service.ParseReportType(c.Query("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report type"})
		return
	}

	table, err := h.reports.BuildTable(c.Request.Context(), reportType)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"type":    table.Type,
		"headers": table.Headers,
		"rows":    table.Rows,
	})
}

func (h *Handler) exportReport(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Param("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid format"})
		return
	}
	reportType, err := service.ParseReportType(c.Query("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report type"})
		return
	}

	result, err := h.reports.Export(c.Request.Context(), reportType, format)
	if err != nil {
		if errors.Is(err, service.ErrNoRows) {
			c.Status(http.StatusNoContent)
			return
		}
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRecentLoginRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

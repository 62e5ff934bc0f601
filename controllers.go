package main

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// -----------------------------
// Helper functions
// -----------------------------

func jsonError(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"error": msg})
}

func idParam(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id64), true
}

// writeStoreError maps core errors onto HTTP statuses: conflicts and
// duplicates to 409, validation to 400, missing records to 404, everything
// else to 500 with the underlying cause appended.
func writeStoreError(c *gin.Context, err error) {
	var conflict *ConflictError
	var invalid *ValidationError
	switch {
	case errors.As(err, &conflict):
		jsonError(c, http.StatusConflict, conflict.Reason)
	case errors.As(err, &invalid):
		jsonError(c, http.StatusBadRequest, invalid.Msg)
	case errors.Is(err, ErrLeaderExists):
		jsonError(c, http.StatusConflict, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		jsonError(c, http.StatusNotFound, "not found")
	default:
		jsonError(c, http.StatusInternalServerError, "storage error: "+err.Error())
	}
}

// -----------------------------
// Activities
// -----------------------------

type ActivityRequest struct {
	Date         string `json:"date" binding:"required"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Venue        string `json:"venue"`
	LeaderID     *uint  `json:"leader_id"`
	Participants string `json:"participants"`
	InputDate    string `json:"input_date"`
	InputTime    string `json:"input_time"`
	ContactName  string `json:"contact_name"`
	ContactInfo  string `json:"contact_info"`
}

func (r *ActivityRequest) toActivity() Activity {
	return Activity{
		Date:         r.Date,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Description:  r.Description,
		Venue:        r.Venue,
		LeaderID:     r.LeaderID,
		Participants: r.Participants,
		InputDate:    r.InputDate,
		InputTime:    r.InputTime,
		ContactName:  r.ContactName,
		ContactInfo:  r.ContactInfo,
	}
}

func CreateActivityHandler(c *gin.Context) {
	var body ActivityRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	activity := body.toActivity()
	if err := CreateActivity(&activity); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, activity)
}

func UpdateActivityHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var body ActivityRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	in := body.toActivity()
	if err := UpdateActivity(id, &in); err != nil {
		writeStoreError(c, err)
		return
	}

	detail, err := GetActivity(id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func DeleteActivityHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := DeleteActivity(id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "activity deleted"})
}

func ListActivitiesHandler(c *gin.Context) {
	var leaderID *uint
	if raw := c.Query("leader_id"); raw != "" {
		id64, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			jsonError(c, http.StatusBadRequest, "invalid leader_id")
			return
		}
		id := uint(id64)
		leaderID = &id
	}

	list, err := ListActivities(leaderID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func GetActivityHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	detail, err := GetActivity(id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// -----------------------------
// Validation pre-check
// -----------------------------

type ValidateRequest struct {
	Date         string `json:"date" binding:"required"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	LeaderID     *uint  `json:"leader_id"`
	Participants string `json:"participants"`
	ExcludeID    *uint  `json:"exclude_id"`
}

// ValidateScheduleHandler lets the UI pre-check a slot without persisting
// anything.
func ValidateScheduleHandler(c *gin.Context) {
	var body ValidateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	err := validateSchedule(body.Date, body.StartTime, body.EndTime,
		body.LeaderID, body.Participants, body.ExcludeID)
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusOK, gin.H{"valid": false, "reason": conflict.Reason})
			return
		}
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// -----------------------------
// Leaders
// -----------------------------

type CreateLeaderRequest struct {
	Name string `json:"name" binding:"required"`
}

func CreateLeaderHandler(c *gin.Context) {
	var body CreateLeaderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	leader, err := CreateLeader(body.Name)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, leader)
}

func ListLeadersHandler(c *gin.Context) {
	leaders, err := ListLeaders()
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, leaders)
}

func DeleteLeaderHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := DeleteLeader(id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "leader deleted, activities unassigned"})
}

type UpdateColorRequest struct {
	Color string `json:"color" binding:"required"`
}

func UpdateLeaderColorHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var body UpdateColorRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	if err := UpdateLeaderColor(id, body.Color); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "color updated"})
}

// -----------------------------
// Spreadsheet import
// -----------------------------

// ImportHandler accepts a multipart .xlsx upload, runs the import pipeline on
// it, and resets the notifier since the dataset changed.
func ImportHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		jsonError(c, http.StatusBadRequest, "missing file upload")
		return
	}

	tmp := filepath.Join(os.TempDir(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, tmp); err != nil {
		jsonError(c, http.StatusInternalServerError, "could not save upload: "+err.Error())
		return
	}
	defer os.Remove(tmp)

	result := ImportActivitiesFromExcel(tmp)
	if result.Imported > 0 {
		notifier.Reset()
	}
	c.JSON(http.StatusOK, result)
}

// -----------------------------
// Notifications
// -----------------------------

func UpcomingNotificationsHandler(c *gin.Context) {
	list, err := notifier.Upcoming()
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func AcknowledgeNotificationHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	notifier.Acknowledge(id)
	c.JSON(http.StatusOK, gin.H{"message": "acknowledged"})
}

func ResetNotificationsHandler(c *gin.Context) {
	notifier.Reset()
	c.JSON(http.StatusOK, gin.H{"message": "notification state reset"})
}

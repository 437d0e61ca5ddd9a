package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/schema"
	"github.com/klauspost/lctime"
	"github.com/mvdwal/festival-companion/entity"
	"github.com/mvdwal/festival-companion/service"
	"github.com/rs/zerolog/log"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type WebAppController struct {
	ScheduleService *service.ScheduleService
	FavoriteService *service.FavoriteService
	ConflictService *service.ConflictService
	ShareService    *service.ShareService
	VendorService   *service.VendorService

	// DegradedPersistence is set when the startup capability probe found
	// storage unavailable and favorites only live in memory.
	DegradedPersistence bool
	Locale              string
}

// RegisterDevice issues the stable per-device identifier. It doubles as the
// device's own person identity; the label "You" only exists at display time.
func (c *WebAppController) RegisterDevice(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"deviceId": uuid.NewString()})
}

func (c *WebAppController) Schedule(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.ScheduleService.Schedule())
}

type stagesRequest struct {
	Venue string `schema:"venue,required"`
	Day   string `schema:"day"`
}

func (c *WebAppController) Stages(ctx *gin.Context) {
	var req stagesRequest
	if err := decoder.Decode(&req, ctx.Request.URL.Query()); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Day != "" {
		ctx.JSON(http.StatusOK, gin.H{"stages": c.ScheduleService.StagesFor(req.Venue, req.Day)})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"stages": c.ScheduleService.AllStageNames(req.Venue)})
}

type favoritesRequest struct {
	DeviceID string `schema:"deviceId,required"`
}

func (c *WebAppController) Favorites(ctx *gin.Context) {
	var req favoritesRequest
	if err := decoder.Decode(&req, ctx.Request.URL.Query()); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := c.FavoriteService.FindManyByDeviceID(req.DeviceID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load favorites")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load favorites"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"favorites": entries})
}

type toggleFavoriteRequest struct {
	DeviceID string `schema:"deviceId,required"`
	SetKey   string `schema:"setKey,required"`
	Person   string `schema:"person"`
}

// ToggleFavorite flips one favorite and returns the updated set together
// with freshly computed conflicts, so the shell re-renders from one round
// trip.
func (c *WebAppController) ToggleFavorite(ctx *gin.Context) {
	if err := ctx.Request.ParseForm(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req toggleFavoriteRequest
	if err := decoder.Decode(&req, ctx.Request.PostForm); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	person := req.Person
	if person == "" {
		person = req.DeviceID
	}

	entries, err := c.FavoriteService.Toggle(req.DeviceID, req.SetKey, person)
	if err != nil {
		log.Error().Err(err).Msg("Failed to toggle favorite")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle favorite"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"favorites": entries,
		"conflicts": c.ConflictService.FindAllConflicts(c.ScheduleService.Schedule(), entries),
	})
}

type peopleRequest struct {
	DeviceID string `schema:"deviceId,required"`
	SetKey   string `schema:"setKey,required"`
}

func (c *WebAppController) People(ctx *gin.Context) {
	var req peopleRequest
	if err := decoder.Decode(&req, ctx.Request.URL.Query()); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	people, err := c.FavoriteService.PeopleFor(req.DeviceID, req.SetKey)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load people")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load people"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"people": people})
}

func (c *WebAppController) Conflicts(ctx *gin.Context) {
	var req favoritesRequest
	if err := decoder.Decode(&req, ctx.Request.URL.Query()); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := c.FavoriteService.FindManyByDeviceID(req.DeviceID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load favorites")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load favorites"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"conflicts": c.ConflictService.FindAllConflicts(c.ScheduleService.Schedule(), entries),
	})
}

type performanceConflictsRequest struct {
	DeviceID string `schema:"deviceId,required"`
	Venue    string `schema:"venue,required"`
	Day      string `schema:"day,required"`
	Stage    string `schema:"stage,required"`
	Artist   string `schema:"artist,required"`
	Start    string `schema:"start"`
	End      string `schema:"end"`
}

func (c *WebAppController) PerformanceConflicts(ctx *gin.Context) {
	var req performanceConflictsRequest
	if err := decoder.Decode(&req, ctx.Request.URL.Query()); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := c.FavoriteService.FindManyByDeviceID(req.DeviceID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load favorites")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load favorites"})
		return
	}

	performance := &entity.Performance{Artist: req.Artist, Start: req.Start, End: req.End}
	details := c.ConflictService.FindConflictsForPerformance(
		c.ScheduleService.Schedule(), entries, performance,
		req.Stage, req.Day, req.Venue, req.DeviceID,
	)

	ctx.JSON(http.StatusOK, gin.H{"conflicts": details})
}

type shareRequest struct {
	DeviceID string `schema:"deviceId,required"`
	Name     string `schema:"name,required"`
}

// Share encodes the device's own favorites plus a display name into a token
// the shell embeds into a shareable URL.
func (c *WebAppController) Share(ctx *gin.Context) {
	if err := ctx.Request.ParseForm(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req shareRequest
	if err := decoder.Decode(&req, ctx.Request.PostForm); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := c.FavoriteService.FindManyByDeviceID(req.DeviceID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load favorites")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load favorites"})
		return
	}

	var favorites []string
	for _, entry := range entries {
		if entry.Person == req.DeviceID {
			favorites = append(favorites, entry.SetKey)
		}
	}

	token, err := c.ShareService.Encode(&entity.SharePayload{Name: req.Name, Favorites: favorites})
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode share payload")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode share payload"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token, "count": len(favorites)})
}

type importRequest struct {
	DeviceID string `schema:"deviceId,required"`
	Token    string `schema:"token,required"`
}

func (c *WebAppController) ImportShared(ctx *gin.Context) {
	if err := ctx.Request.ParseForm(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req importRequest
	if err := decoder.Decode(&req, ctx.Request.PostForm); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload := c.ShareService.Decode(req.Token)
	if payload == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "this link is invalid"})
		return
	}

	if len(payload.Favorites) == 0 {
		// Valid link, nothing to import. Distinct from invalid so the shell
		// can message it properly.
		ctx.JSON(http.StatusOK, gin.H{"imported": 0, "empty": true, "name": payload.Name})
		return
	}

	entries, imported, err := c.FavoriteService.ImportShared(req.DeviceID, payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to import shared favorites")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to import shared favorites"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"imported":  imported,
		"name":      payload.Name,
		"favorites": entries,
		"conflicts": c.ConflictService.FindAllConflicts(c.ScheduleService.Schedule(), entries),
	})
}

type legacyImportRequest struct {
	DeviceID string   `schema:"deviceId,required"`
	Artists  []string `schema:"artists"`
}

// ImportLegacyFavorites upgrades an old client's flat artist-name list at
// the boundary. Upgraded entries carry no day/stage/time granularity and
// stay out of conflict detection.
func (c *WebAppController) ImportLegacyFavorites(ctx *gin.Context) {
	if err := ctx.Request.ParseForm(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req legacyImportRequest
	if err := decoder.Decode(&req, ctx.Request.PostForm); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := c.FavoriteService.UpgradeLegacy(req.DeviceID, req.Artists)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade legacy favorites")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade legacy favorites"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"favorites": entries})
}

type vendorsRequest struct {
	Category string `schema:"category"`
	Query    string `schema:"query"`
}

func (c *WebAppController) Vendors(ctx *gin.Context) {
	var req vendorsRequest
	if err := decoder.Decode(&req, ctx.Request.URL.Query()); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"vendors":    c.VendorService.FindMany(req.Category, req.Query),
		"categories": c.VendorService.Categories(),
	})
}

func (c *WebAppController) Status(ctx *gin.Context) {
	fetchedAt, err := lctime.StrftimeLoc(c.Locale, "%A, %d %B %H:%M", c.ScheduleService.FetchedAt())
	if err != nil {
		fetchedAt = c.ScheduleService.FetchedAt().Format("Monday, 02 January 15:04")
	}

	ctx.JSON(http.StatusOK, gin.H{
		"scheduleSource":      c.ScheduleService.Source(),
		"scheduleFetchedAt":   fetchedAt,
		"degradedPersistence": c.DegradedPersistence,
	})
}

package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/SyaefulEffendi/bahasaku-server/internal/detector"
	"github.com/SyaefulEffendi/bahasaku-server/internal/handler"
	"github.com/SyaefulEffendi/bahasaku-server/internal/middleware"
	"github.com/SyaefulEffendi/bahasaku-server/internal/model"
	"github.com/SyaefulEffendi/bahasaku-server/internal/repository"
	"github.com/SyaefulEffendi/bahasaku-server/internal/service"
	"github.com/SyaefulEffendi/bahasaku-server/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	pkgstorage "github.com/SyaefulEffendi/bahasaku-server/pkg/storage"
)

const testSecret = "test-secret-key"

type fakeDetector struct {
	detections []detector.Detection
	err        error
}

func (f *fakeDetector) Detect(ctx context.Context, imageBytes []byte, minConfidence float64) ([]detector.Detection, error) {
	return f.detections, f.err
}

type APIIntegrationTestSuite struct {
	suite.Suite
	testDB   *testutil.TestDatabase
	router   *gin.Engine
	detector *fakeDetector

	adminToken string
	userToken  string
	admin      *model.User
	user       *model.User
}

func (s *APIIntegrationTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.testDB = testutil.SetupTestDatabase(s.T())
	s.detector = &fakeDetector{}

	media, err := pkgstorage.NewLocalStorage(s.T().TempDir())
	require.NoError(s.T(), err)

	zlog := zap.NewNop()

	userRepo := repository.NewUserRepository(s.testDB.DB)
	kosaKataRepo := repository.NewKosaKataRepository(s.testDB.DB)
	feedbackRepo := repository.NewFeedbackRepository(s.testDB.DB)
	informationRepo := repository.NewInformationRepository(s.testDB.DB)

	authService := service.NewAuthService(userRepo, nil, testSecret, 8*time.Hour, 24*time.Hour, 30*time.Second)
	userService := service.NewUserService(userRepo, media, zlog)
	kosaKataService := service.NewKosaKataService(kosaKataRepo, userRepo, media, zlog)
	feedbackService := service.NewFeedbackService(feedbackRepo, userRepo)
	informationService := service.NewInformationService(informationRepo, userRepo, media, zlog)
	detectionService := service.NewDetectionService(s.detector, 0.60, kosaKataRepo, zlog)

	authHandler := handler.NewAuthHandler(authService, zlog)
	userHandler := handler.NewUserHandler(userService, zlog)
	kosaKataHandler := handler.NewKosaKataHandler(kosaKataService, zlog)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, zlog)
	informationHandler := handler.NewInformationHandler(informationService, zlog)
	detectionHandler := handler.NewDetectionHandler(detectionService, zlog)

	authMiddleware := middleware.NewAuthMiddleware(testSecret)

	router := gin.New()
	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", authMiddleware.OptionalAuth(), authHandler.Register)
			users.POST("/login", authHandler.Login)
			users.GET("", authMiddleware.RequireAuth(), userHandler.GetAll)
			users.GET("/:id", authMiddleware.RequireAuth(), userHandler.GetByID)
			users.PUT("/:id", authMiddleware.RequireAuth(), userHandler.Update)
			users.PATCH("/:id", authMiddleware.RequireAuth(), userHandler.Update)
			users.DELETE("/:id", authMiddleware.RequireAuth(), userHandler.Delete)
			users.POST("/:id/photo", authMiddleware.RequireAuth(), userHandler.UploadPhoto)
			users.PUT("/:id/change-password", authMiddleware.RequireAuth(), userHandler.ChangePassword)
		}

		vocabulary := api.Group("/vocabulary")
		{
			vocabulary.GET("", kosaKataHandler.GetAll)
			vocabulary.GET("/:id", kosaKataHandler.GetByID)
			vocabulary.POST("", authMiddleware.RequireAuth(), kosaKataHandler.Create)
			vocabulary.PUT("/:id", authMiddleware.RequireAuth(), kosaKataHandler.Update)
			vocabulary.PATCH("/:id", authMiddleware.RequireAuth(), kosaKataHandler.Update)
			vocabulary.DELETE("/:id", authMiddleware.RequireAuth(), kosaKataHandler.Delete)
		}

		feedback := api.Group("/feedback")
		{
			feedback.GET("", feedbackHandler.GetAll)
			feedback.POST("", authMiddleware.RequireAuth(), feedbackHandler.Create)
			feedback.PUT("/:id", authMiddleware.RequireAuth(), feedbackHandler.UpdateStatus)
		}

		information := api.Group("/information")
		{
			information.GET("", informationHandler.GetAll)
			information.POST("", authMiddleware.RequireAuth(), informationHandler.Create)
		}

		api.POST("/ai/predict", detectionHandler.Predict)
	}
	s.router = router

	s.seedAccounts()
}

func (s *APIIntegrationTestSuite) TearDownTest() {
	s.testDB.Teardown(s.T())
}

func (s *APIIntegrationTestSuite) seedAccounts() {
	admin, err := testutil.CreateTestUser("Administrator", "admin@example.com", "admin123", model.RoleAdmin)
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.testDB.DB.Create(admin).Error)
	s.admin = admin
	s.adminToken = s.login("admin@example.com", "admin123")

	user, err := testutil.CreateTestUser("Budi Santoso", "budi@example.com", "rahasia123", model.RoleUser)
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.testDB.DB.Create(user).Error)
	s.user = user
	s.userToken = s.login("budi@example.com", "rahasia123")
}

func (s *APIIntegrationTestSuite) login(identifier, password string) string {
	w := s.doJSON(http.MethodPost, "/api/users/login", "", map[string]interface{}{
		"identifier": identifier,
		"password":   password,
	})
	require.Equal(s.T(), http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	token, _ := resp["access_token"].(string)
	require.NotEmpty(s.T(), token)
	return token
}

func (s *APIIntegrationTestSuite) doJSON(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(bodyBytes)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APIIntegrationTestSuite) doMultipart(method, path, token string, fields map[string]string, fileField, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(s.T(), writer.WriteField(k, v))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(s.T(), err)
		_, err = part.Write(fileContent)
		require.NoError(s.T(), err)
	}
	require.NoError(s.T(), writer.Close())

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APIIntegrationTestSuite) parseBody(w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func pngBytes(t *testing.T) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

func (s *APIIntegrationTestSuite) TestRegisterAndLoginFlow() {
	w := s.doJSON(http.MethodPost, "/api/users/register", "", map[string]interface{}{
		"full_name": "Siti Aminah",
		"email":     "siti@example.com",
		"password":  "rahasia123",
		"user_type": "Deaf",
	})
	require.Equal(s.T(), http.StatusCreated, w.Code)

	resp := s.parseBody(w)
	assert.Equal(s.T(), "registration successful", resp["message"])
	assert.NotEmpty(s.T(), resp["access_token"])

	user := resp["user"].(map[string]interface{})
	assert.Equal(s.T(), "siti@example.com", user["email"])
	assert.Equal(s.T(), model.RoleUser, user["role"])

	token := s.login("siti@example.com", "rahasia123")
	assert.NotEmpty(s.T(), token)
}

func (s *APIIntegrationTestSuite) TestRegisterValidationError() {
	w := s.doJSON(http.MethodPost, "/api/users/register", "", map[string]interface{}{
		"full_name": "Siti",
		"email":     "not-an-email",
		"password":  "short",
		"user_type": "Robot",
	})
	require.Equal(s.T(), http.StatusBadRequest, w.Code)

	resp := s.parseBody(w)
	assert.Equal(s.T(), "validation error", resp["error"])
	messages := resp["messages"].(map[string]interface{})
	assert.Contains(s.T(), messages, "email")
	assert.Contains(s.T(), messages, "password")
	assert.Contains(s.T(), messages, "user_type")
}

func (s *APIIntegrationTestSuite) TestRegisterRoleAssignmentNeedsAdminToken() {
	payload := map[string]interface{}{
		"full_name": "Calon Admin",
		"email":     "calon@example.com",
		"password":  "rahasia123",
		"user_type": "General",
		"role":      "Admin",
	}

	w := s.doJSON(http.MethodPost, "/api/users/register", s.userToken, payload)
	require.Equal(s.T(), http.StatusCreated, w.Code)
	created := s.parseBody(w)["user"].(map[string]interface{})
	assert.Equal(s.T(), model.RoleUser, created["role"])

	payload["email"] = "calon2@example.com"
	w = s.doJSON(http.MethodPost, "/api/users/register", s.adminToken, payload)
	require.Equal(s.T(), http.StatusCreated, w.Code)
	created = s.parseBody(w)["user"].(map[string]interface{})
	assert.Equal(s.T(), model.RoleAdmin, created["role"])
}

func (s *APIIntegrationTestSuite) TestLoginWrongPassword() {
	w := s.doJSON(http.MethodPost, "/api/users/login", "", map[string]interface{}{
		"identifier": "budi@example.com",
		"password":   "salah",
	})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *APIIntegrationTestSuite) TestUserListIsAdminOnly() {
	w := s.doJSON(http.MethodGet, "/api/users", "", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	w = s.doJSON(http.MethodGet, "/api/users", s.userToken, nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.doJSON(http.MethodGet, "/api/users", s.adminToken, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *APIIntegrationTestSuite) TestUserCannotReadOtherProfile() {
	w := s.doJSON(http.MethodGet, "/api/users/"+itoa(s.admin.ID), s.userToken, nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.doJSON(http.MethodGet, "/api/users/"+itoa(s.user.ID), s.userToken, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *APIIntegrationTestSuite) TestVocabularyCreateAndList() {
	w := s.doMultipart(http.MethodPost, "/api/vocabulary", "", map[string]string{"text": "Halo"}, "video", "halo.mp4", []byte("video"))
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	w = s.doMultipart(http.MethodPost, "/api/vocabulary", s.userToken, map[string]string{"text": "Halo"}, "video", "halo.mp4", []byte("video"))
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.doMultipart(http.MethodPost, "/api/vocabulary", s.adminToken, map[string]string{"text": "Halo", "category": "Greeting"}, "video", "halo.mp4", []byte("video"))
	require.Equal(s.T(), http.StatusCreated, w.Code)
	created := s.parseBody(w)["kosa_kata"].(map[string]interface{})
	assert.Equal(s.T(), "Halo", created["text"])
	assert.Equal(s.T(), "Greeting", created["category"])

	w = s.doJSON(http.MethodGet, "/api/vocabulary", "", nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(s.T(), list, 1)
	assert.Equal(s.T(), "Halo", list[0]["text"])
}

func (s *APIIntegrationTestSuite) TestVocabularyCreateWithoutVideo() {
	w := s.doMultipart(http.MethodPost, "/api/vocabulary", s.adminToken, map[string]string{"text": "Halo"}, "", "", nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *APIIntegrationTestSuite) TestFeedbackCreateUsesTokenIdentity() {
	w := s.doJSON(http.MethodPost, "/api/feedback", s.userToken, map[string]interface{}{
		"message": "aplikasinya bagus",
		"user_id": s.admin.ID,
	})
	require.Equal(s.T(), http.StatusCreated, w.Code)

	created := s.parseBody(w)["feedback"].(map[string]interface{})
	assert.EqualValues(s.T(), s.user.ID, created["user_id"])
	assert.Equal(s.T(), model.FeedbackStatusNew, created["status"])
}

func (s *APIIntegrationTestSuite) TestFeedbackModerationIsAdminOnly() {
	w := s.doJSON(http.MethodPost, "/api/feedback", s.userToken, map[string]interface{}{"message": "halo"})
	require.Equal(s.T(), http.StatusCreated, w.Code)
	created := s.parseBody(w)["feedback"].(map[string]interface{})
	id := itoa(uint(created["id"].(float64)))

	w = s.doJSON(http.MethodPut, "/api/feedback/"+id, s.userToken, map[string]interface{}{"status": "Done"})
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.doJSON(http.MethodPut, "/api/feedback/"+id, s.adminToken, map[string]interface{}{"status": "Done"})
	require.Equal(s.T(), http.StatusOK, w.Code)
	updated := s.parseBody(w)["feedback"].(map[string]interface{})
	assert.Equal(s.T(), model.FeedbackStatusDone, updated["status"])
}

func (s *APIIntegrationTestSuite) TestInformationCreateAndList() {
	w := s.doMultipart(http.MethodPost, "/api/information", s.adminToken, map[string]string{
		"title":   "Lomba Bahasa Isyarat",
		"content": "Pendaftaran dibuka minggu depan.",
	}, "image", "poster.png", pngBytes(s.T()))
	require.Equal(s.T(), http.StatusCreated, w.Code)

	created := s.parseBody(w)["information"].(map[string]interface{})
	assert.Equal(s.T(), "Lomba Bahasa Isyarat", created["title"])
	assert.Equal(s.T(), "Administrator", created["created_by"])

	w = s.doJSON(http.MethodGet, "/api/information?limit=5", "", nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(s.T(), list, 1)
}

func (s *APIIntegrationTestSuite) TestInformationCreateIsAdminOnly() {
	w := s.doMultipart(http.MethodPost, "/api/information", s.userToken, map[string]string{
		"title":   "Coba",
		"content": "Isi",
	}, "", "", nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
}

func (s *APIIntegrationTestSuite) TestPredictWithoutImage() {
	w := s.doMultipart(http.MethodPost, "/api/ai/predict", "", nil, "", "", nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *APIIntegrationTestSuite) TestPredictMatchesCatalog() {
	w := s.doMultipart(http.MethodPost, "/api/vocabulary", s.adminToken, map[string]string{"text": "Halo"}, "video", "halo.mp4", []byte("video"))
	require.Equal(s.T(), http.StatusCreated, w.Code)

	s.detector.detections = []detector.Detection{{Label: "halo", Confidence: 0.92}}

	w = s.doMultipart(http.MethodPost, "/api/ai/predict", "", nil, "image", "frame.png", pngBytes(s.T()))
	require.Equal(s.T(), http.StatusOK, w.Code)

	resp := s.parseBody(w)
	assert.Equal(s.T(), "halo", resp["text"])
	assert.Equal(s.T(), true, resp["found_in_db"])
	detail := resp["db_detail"].(map[string]interface{})
	assert.Equal(s.T(), "Halo", detail["text"])
}

func (s *APIIntegrationTestSuite) TestPredictBelowThreshold() {
	s.detector.detections = []detector.Detection{{Label: "halo", Confidence: 0.10}}

	w := s.doMultipart(http.MethodPost, "/api/ai/predict", "", nil, "image", "frame.png", pngBytes(s.T()))
	require.Equal(s.T(), http.StatusOK, w.Code)

	resp := s.parseBody(w)
	assert.Equal(s.T(), "", resp["text"])
	assert.Equal(s.T(), false, resp["found_in_db"])
}

func (s *APIIntegrationTestSuite) TestUserUpdateViaPatch() {
	w := s.doJSON(http.MethodPatch, "/api/users/"+itoa(s.user.ID), s.userToken, map[string]interface{}{
		"full_name": "Budi Revisi",
	})
	require.Equal(s.T(), http.StatusOK, w.Code)

	resp := s.parseBody(w)
	updated := resp["user"].(map[string]interface{})
	assert.Equal(s.T(), "Budi Revisi", updated["full_name"])
}

func (s *APIIntegrationTestSuite) TestVocabularyUpdateViaPatch() {
	w := s.doMultipart(http.MethodPost, "/api/vocabulary", s.adminToken, map[string]string{"text": "Halo"}, "video", "halo.mp4", []byte("video"))
	require.Equal(s.T(), http.StatusCreated, w.Code)
	created := s.parseBody(w)["kosa_kata"].(map[string]interface{})
	id := strconv.FormatFloat(created["id"].(float64), 'f', 0, 64)

	w = s.doMultipart(http.MethodPatch, "/api/vocabulary/"+id, s.adminToken, map[string]string{"text": "Halo Baru"}, "", "", nil)
	require.Equal(s.T(), http.StatusOK, w.Code)

	updated := s.parseBody(w)["kosa_kata"].(map[string]interface{})
	assert.Equal(s.T(), "Halo Baru", updated["text"])
}

func (s *APIIntegrationTestSuite) TestChangePasswordEndpoint() {
	w := s.doJSON(http.MethodPut, "/api/users/"+itoa(s.user.ID)+"/change-password", s.userToken, map[string]interface{}{
		"old_password": "rahasia123",
		"new_password": "rahasia456",
	})
	require.Equal(s.T(), http.StatusOK, w.Code)

	token := s.login("budi@example.com", "rahasia456")
	assert.NotEmpty(s.T(), token)
}

func (s *APIIntegrationTestSuite) TestUploadPhotoFlow() {
	w := s.doMultipart(http.MethodPost, "/api/users/"+itoa(s.user.ID)+"/photo", s.userToken, nil, "photo", "avatar.png", pngBytes(s.T()))
	require.Equal(s.T(), http.StatusOK, w.Code)

	resp := s.parseBody(w)
	updated := resp["user"].(map[string]interface{})
	assert.Contains(s.T(), updated["profile_pic_url"], "avatar.png")
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestAPIIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(APIIntegrationTestSuite))
}

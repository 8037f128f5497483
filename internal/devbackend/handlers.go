package devbackend

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/edureach/internal/app/models"
	"github.com/yigit/edureach/internal/backend"
	"github.com/yigit/edureach/internal/pkg/apperrors"
	"github.com/yigit/edureach/internal/pkg/auth"
	"github.com/yigit/edureach/internal/pkg/validation"
)

// maxSummarizeUpload caps the PDF read into memory.
const maxSummarizeUpload = validation.MaxPDFSize

func (s *Server) login(c *gin.Context) {
	var req backend.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, badRequest("Format permintaan tidak valid."))
		return
	}

	user, hash, ok := s.store.AccountByEmail(req.Email)
	err := apperrors.ErrInvalidCredentials
	if ok {
		err = auth.VerifyPassword(hash, req.Password)
	}
	if errors.Is(err, apperrors.ErrInvalidCredentials) {
		s.writeError(c, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Email atau password salah."))
		return
	}
	if err != nil {
		s.writeError(c, err)
		return
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.logger.Info().Str("userId", user.ID).Msg("Dev backend login")
	c.JSON(http.StatusOK, token)
}

func (s *Server) register(c *gin.Context) {
	var req backend.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, badRequest("Format permintaan tidak valid."))
		return
	}
	switch {
	case isBlank(req.FirstName):
		s.writeError(c, badRequest("Nama depan tidak boleh kosong."))
		return
	case !validation.IsDotComEmail(req.Email):
		s.writeError(c, badRequest("Email harus dalam format [nama]@[domain].com"))
		return
	case len(req.Password) < validation.PasswordMinLength:
		s.writeError(c, badRequest("Password terlalu pendek."))
		return
	case req.Password != req.ConfirmPassword:
		s.writeError(c, badRequest("Konfirmasi password tidak sama."))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	user, err := s.store.CreateAccount(models.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
		IsVolunteer: req.IsVolunteer,
	}, hash)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.store.Notify(user.ID, "Selamat datang di EduReach, "+user.FirstName+"!")
	c.JSON(http.StatusCreated, user)
}

func (s *Server) currentUser(c *gin.Context) {
	user, ok := s.store.User(userIDFrom(c))
	if !ok {
		s.writeError(c, apperrors.NewResourceNotFoundError("Pengguna tidak ditemukan."))
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) updateUser(c *gin.Context) {
	imagePath, err := s.saveImage(c, "Image", "users")
	if err != nil {
		s.writeError(c, err)
		return
	}

	user, err := s.store.UpdateProfile(userIDFrom(c), ProfileUpdate{
		FirstName:   c.PostForm("FirstName"),
		LastName:    c.PostForm("LastName"),
		DateOfBirth: c.PostForm("Dob"),
		Email:       c.PostForm("Email"),
		ImagePath:   imagePath,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) changePassword(c *gin.Context) {
	var req backend.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, badRequest("Format permintaan tidak valid."))
		return
	}
	if len(req.Password) < validation.PasswordMinLength || req.Password != req.ConfirmPassword {
		s.writeError(c, badRequest("Password baru tidak valid."))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if err := s.store.SetPasswordHash(userIDFrom(c), hash); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) notifications(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Notifications(userIDFrom(c)))
}

func (s *Server) updateNotification(c *gin.Context) {
	var req backend.NotificationUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, badRequest("Format permintaan tidak valid."))
		return
	}
	n, err := s.store.UpdateNotification(userIDFrom(c), c.Param("id"), req.Message, req.IsShown, req.IsChecked)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (s *Server) locations(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Locations())
}

func (s *Server) communities(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Communities())
}

func (s *Server) community(c *gin.Context) {
	community, err := s.store.Community(c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, community)
}

func (s *Server) userCommunities(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.UserCommunities(c.Param("userId")))
}

func (s *Server) createCommunity(c *gin.Context) {
	name := c.PostForm("Name")
	if isBlank(name) {
		s.writeError(c, badRequest("Nama komunitas tidak boleh kosong."))
		return
	}
	imagePath, err := s.saveImage(c, "Image", "communities")
	if err != nil {
		s.writeError(c, err)
		return
	}

	community, err := s.store.CreateCommunity(userIDFrom(c), name, c.PostForm("Description"), c.PostForm("LocationId"), imagePath)
	if err != nil {
		if imagePath != "" {
			_ = s.files.DeleteFile(imagePath)
		}
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, community)
}

func (s *Server) addMember(c *gin.Context) {
	var req backend.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, badRequest("Format permintaan tidak valid."))
		return
	}
	if err := s.store.AddMember(req.CommunityID, req.MemberID); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) schedules(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Schedules())
}

func (s *Server) createSchedule(c *gin.Context) {
	var req backend.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, badRequest("Format permintaan tidak valid."))
		return
	}
	if req.ScheduleTime.IsZero() {
		s.writeError(c, badRequest("Waktu jadwal tidak boleh kosong."))
		return
	}
	schedule, err := s.store.CreateSchedule(userIDFrom(c), req.CommunityID, req.ScheduleTime.UTC())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

func (s *Server) deleteSchedule(c *gin.Context) {
	if err := s.store.DeleteSchedule(userIDFrom(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) summarize(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		s.writeError(c, badRequest("File PDF wajib diunggah."))
		return
	}
	data, err := readUpload(header, maxSummarizeUpload)
	if err != nil {
		s.writeError(c, err)
		return
	}

	title, result, err := s.summarizer.Summarize(header.Filename, data, c.PostForm("sourceLang"), c.PostForm("targetLang"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	summary := s.store.AddSummary(models.Summary{
		UserID:        userIDFrom(c),
		SummaryTitle:  title,
		SummaryResult: result,
		Language:      c.PostForm("targetLang"),
	})
	s.store.Notify(summary.UserID, "Ringkasan "+title+" selesai dibuat.")
	c.JSON(http.StatusOK, summary)
}

func (s *Server) userSummaries(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.UserSummaries(c.Param("userId")))
}

// saveImage stores an optional image part. A missing part yields "".
func (s *Server) saveImage(c *gin.Context, field, subPath string) (string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", badRequest("Format permintaan tidak valid.")
	}

	data, err := readUpload(header, validation.MaxImageSize)
	if err != nil {
		return "", err
	}
	if verr := validation.CheckImage(field, data); verr != nil {
		return "", badRequest("File harus berupa gambar.")
	}
	return s.files.SaveFileWithPath(header, subPath)
}

func readUpload(header *multipart.FileHeader, max int64) ([]byte, error) {
	if header.Size > max {
		return nil, badRequest("Ukuran file terlalu besar.")
	}
	f, err := header.Open()
	if err != nil {
		return nil, badRequest("Gagal membaca file yang diunggah.")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, max))
	if err != nil {
		return nil, badRequest("Gagal membaca file yang diunggah.")
	}
	return data, nil
}

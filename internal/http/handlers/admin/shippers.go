package admin

import (
	"encoding/json"
	"errors"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vivumarket.vn/app/internal/http/middleware"
	"vivumarket.vn/app/internal/http/respond"
	"vivumarket.vn/app/internal/http/validation"
	"vivumarket.vn/app/internal/modules/shippers"
	"vivumarket.vn/app/internal/shared/apperr"
	"vivumarket.vn/app/internal/storage"
	"vivumarket.vn/app/pkg/view"
)

const maxAvatarSize = 2 << 20

type ShippersHandler struct {
	DB      *gorm.DB
	Storage storage.Storage
	Svc     *shippers.Service
}

func NewShippersHandler(db *gorm.DB, files storage.Storage) *ShippersHandler {
	return &ShippersHandler{DB: db, Storage: files, Svc: shippers.NewService(db)}
}

func (h *ShippersHandler) List(c *gin.Context) {
	page := parseInt(c.Query("page"), 1)
	size := parseInt(c.Query("pageSize"), 20)

	res, err := shippers.NewRepo(h.DB).List(c.Request.Context(), shippers.ListParams{
		Q:        c.Query("q"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	rows := make([]gin.H, 0, len(res.Items))
	for _, sh := range res.Items {
		rows = append(rows, shipperRow(sh))
	}
	respond.OK(c, respond.Page{Items: rows, Total: res.Total, Page: page, PageSize: size})
}

func (h *ShippersHandler) Detail(c *gin.Context) {
	sh, err := shippers.NewRepo(h.DB).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if sh == nil {
		middleware.Fail(c, apperr.NotFoundErr("Không tìm thấy shipper."))
		return
	}
	respond.OK(c, shipperRow(*sh))
}

type createShipperRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	VehiclePlate string `json:"vehiclePlate"`
	WorkArea     string `json:"workArea"`
}

func (r createShipperRequest) validate() map[string]string {
	fields := map[string]string{}
	if _, err := mail.ParseAddress(strings.TrimSpace(r.Email)); err != nil {
		fields["email"] = "Email không hợp lệ."
	}
	if len(r.Password) < 8 {
		fields["password"] = "Tối thiểu 8 ký tự."
	}
	if strings.TrimSpace(r.FullName) == "" {
		fields["fullName"] = "Trường này là bắt buộc."
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Create opens a courier account. The body is multipart: a "dto" JSON
// part with the account fields plus an optional "avatar" image.
func (h *ShippersHandler) Create(c *gin.Context) {
	var req createShipperRequest
	if err := json.Unmarshal([]byte(c.PostForm("dto")), &req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Yêu cầu không hợp lệ.", nil))
		return
	}
	if fields := req.validate(); fields != nil {
		middleware.Fail(c, apperr.InvalidErr("Dữ liệu gửi lên không hợp lệ.", fields))
		return
	}

	var avatarURL *string
	if fh, err := c.FormFile("avatar"); err == nil {
		if fh.Size > maxAvatarSize {
			middleware.Fail(c, apperr.InvalidErr("Ảnh đại diện vượt quá dung lượng cho phép (2MB).", nil))
			return
		}
		f, err := fh.Open()
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		defer f.Close()

		put, err := h.Storage.Put(c.Request.Context(), f, storage.PutInput{
			Folder:      "shippers",
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		})
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		avatarURL = &put.URL
	}

	sh, err := h.Svc.Create(c.Request.Context(), shippers.CreateInput{
		Email:        req.Email,
		Password:     req.Password,
		FullName:     req.FullName,
		Phone:        req.Phone,
		VehiclePlate: req.VehiclePlate,
		WorkArea:     req.WorkArea,
		AvatarURL:    avatarURL,
	})
	if err != nil {
		if errors.Is(err, shippers.ErrEmailTaken) {
			middleware.Fail(c, apperr.ConflictErr("Email đã được đăng ký."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	respond.Created(c, shipperRow(sh))
}

type updateShipperRequest struct {
	FullName     string `json:"fullName" binding:"max=128"`
	Phone        string `json:"phone" binding:"max=32"`
	VehiclePlate string `json:"vehiclePlate" binding:"max=16"`
	WorkArea     string `json:"workArea" binding:"max=128"`
}

func (h *ShippersHandler) Update(c *gin.Context) {
	var req updateShipperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Yêu cầu không hợp lệ.", validation.FromBindError(err, &req)))
		return
	}

	sh, err := h.Svc.UpdateInfo(c.Request.Context(), shippers.UpdateInput{
		UserID:       c.Param("id"),
		FullName:     req.FullName,
		Phone:        req.Phone,
		VehiclePlate: req.VehiclePlate,
		WorkArea:     req.WorkArea,
	})
	if err != nil {
		h.failShipper(c, err)
		return
	}
	respond.OK(c, shipperRow(sh))
}

// SetStatus backs the activate and deactivate routes.
func (h *ShippersHandler) SetStatus(status string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh, err := h.Svc.SetStatus(c.Request.Context(), c.Param("id"), status)
		if err != nil {
			h.failShipper(c, err)
			return
		}
		respond.OK(c, shipperRow(sh))
	}
}

func (h *ShippersHandler) ResetPassword(c *gin.Context) {
	pw, err := h.Svc.ResetPassword(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.failShipper(c, err)
		return
	}
	respond.OK(c, gin.H{"tempPassword": pw})
}

func (h *ShippersHandler) Statistics(c *gin.Context) {
	st, err := h.Svc.Statistics(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	respond.OK(c, gin.H{
		"total":    st.Total,
		"active":   st.Active,
		"inactive": st.Inactive,
	})
}

func (h *ShippersHandler) failShipper(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		middleware.Fail(c, apperr.NotFoundErr("Không tìm thấy shipper."))
	case errors.Is(err, shippers.ErrAlreadyActive), errors.Is(err, shippers.ErrAlreadyInactive):
		middleware.Fail(c, apperr.ConflictErr("Shipper đã ở trạng thái này."))
	default:
		middleware.Fail(c, apperr.Wrap(err))
	}
}

func shipperRow(sh shippers.Shipper) gin.H {
	return gin.H{
		"id":           sh.User.ID,
		"email":        sh.User.Email,
		"fullName":     ptrStr(sh.User.FullName),
		"phone":        ptrStr(sh.User.Phone),
		"vehiclePlate": ptrStr(sh.Profile.VehiclePlate),
		"workArea":     ptrStr(sh.Profile.WorkArea),
		"avatarUrl":    ptrStr(sh.Profile.AvatarURL),
		"status":       sh.Profile.Status,
		"statusBadge":  view.ShipperBadge(sh.Profile.Status),
		"createdAt":    view.DisplayTime(sh.Profile.CreatedAt),
	}
}

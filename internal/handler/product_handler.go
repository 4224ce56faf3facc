package handler

import (
	"io"
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// OwnerGuardが入れたユーザーを取り出す
func getProfileFromContext(c echo.Context) (*model.User, bool) {
	profile, ok := c.Get(middleware.CtxProfileKey).(*model.User)
	if !ok || profile == nil {
		return nil, false
	}
	return profile, true
}

// /products のAPI（公開＋管理者CRUD）
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 公開ルートと管理者ルートを登録
func (h *ProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	e.GET("/products", h.list)
	e.GET("/product/:productId", h.detail)
	e.GET("/product/photo/:productId", h.photo)
	e.GET("/products/search", h.search)
	e.POST("/products/by/search", h.filter)
	e.GET("/products/related/:productId", h.related)
	e.GET("/products/categories", h.usedCategories)

	admin := []echo.MiddlewareFunc{
		middleware.AuthJWT(cfg),
		middleware.OwnerGuard(userRepo),
		middleware.AdminRoleGuard(),
	}
	e.POST("/product/create/:userId", h.create, admin...)
	e.PUT("/product/:productId/:userId", h.update, admin...)
	e.DELETE("/product/:productId/:userId", h.delete, admin...)
}

func (h *ProductHandler) list(c echo.Context) error {
	// limit（default 6）
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListProductsInput{
		SortBy: c.QueryParam("sortBy"),
		Order:  c.QueryParam("order"),
		Limit:  limit,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Product not found"})
	}

	p, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

// 写真バイナリを商品のContent-Typeで返す
func (h *ProductHandler) photo(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Product not found"})
	}

	data, contentType, err := h.uc.GetPhoto(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return c.Blob(http.StatusOK, contentType, data)
}

func (h *ProductHandler) search(c echo.Context) error {
	var categoryID *int64
	if v := c.QueryParam("category"); v != "" && v != "All" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Category does not exist"})
		}
		categoryID = &id
	}

	out, err := h.uc.Search(c.Request().Context(), c.QueryParam("search"), categoryID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

type filterRequest struct {
	Skip    int    `json:"skip"`
	Limit   int    `json:"limit"`
	SortBy  string `json:"sortBy"`
	Order   string `json:"order"`
	Filters struct {
		Category []int64   `json:"category"`
		Price    []float64 `json:"price"`
	} `json:"filters"`
}

func (h *ProductHandler) filter(c echo.Context) error {
	var req filterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Filter(c.Request().Context(), usecase.FilterProductsInput{
		Skip:     req.Skip,
		Limit:    req.Limit,
		SortBy:   req.SortBy,
		Order:    req.Order,
		Category: req.Filters.Category,
		Price:    req.Filters.Price,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) related(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Product not found"})
	}

	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.Related(c.Request().Context(), id, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) usedCategories(c echo.Context) error {
	out, err := h.uc.UsedCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// multipartの共通読み取り（create/update兼用）
func readProductForm(c echo.Context) (usecase.UpdateProductInput, error) {
	var in usecase.UpdateProductInput

	if v := c.FormValue("name"); v != "" {
		in.Name = &v
	}
	if v := c.FormValue("description"); v != "" {
		in.Description = &v
	}
	if v := c.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return in, usecase.NewHTTPError(http.StatusBadRequest, "invalid price")
		}
		in.Price = &price
	}
	if v := c.FormValue("category"); v != "" {
		categoryID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return in, usecase.NewHTTPError(http.StatusBadRequest, "Category does not exist")
		}
		in.CategoryID = &categoryID
	}
	if v := c.FormValue("quantity"); v != "" {
		quantity, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return in, usecase.NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
		in.Quantity = &quantity
	}
	if v := c.FormValue("shipping"); v != "" {
		shipping, err := strconv.ParseBool(v)
		if err != nil {
			return in, usecase.NewHTTPError(http.StatusBadRequest, "invalid shipping")
		}
		in.Shipping = &shipping
	}

	//写真は任意。サイズ超過は読み込む前に弾く。
	file, err := c.FormFile("photo")
	if err == nil && file != nil {
		if file.Size > usecase.MaxPhotoBytes {
			return in, usecase.NewHTTPError(http.StatusBadRequest, "Image should be less than 100mb in size")
		}
		src, err := file.Open()
		if err != nil {
			return in, usecase.NewHTTPError(http.StatusBadRequest, "Image could not be uploaded")
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			return in, usecase.NewHTTPError(http.StatusBadRequest, "Image could not be uploaded")
		}
		in.Photo = data
		in.PhotoContentType = file.Header.Get("Content-Type")
	}

	return in, nil
}

func (h *ProductHandler) create(c echo.Context) error {
	form, err := readProductForm(c)
	if err != nil {
		return writeError(c, err)
	}

	//createは全フィールド必須
	if form.Name == nil || form.Description == nil || form.Price == nil ||
		form.CategoryID == nil || form.Quantity == nil || form.Shipping == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "All fields are required"})
	}

	p, err := h.uc.Create(c.Request().Context(), usecase.CreateProductInput{
		Name:             *form.Name,
		Description:      *form.Description,
		Price:            *form.Price,
		CategoryID:       *form.CategoryID,
		Quantity:         *form.Quantity,
		Shipping:         *form.Shipping,
		Photo:            form.Photo,
		PhotoContentType: form.PhotoContentType,
	})
	if err != nil {
		return writeError(c, err)
	}

	p.Photo = nil
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Product not found"})
	}

	form, err := readProductForm(c)
	if err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.Update(c.Request().Context(), id, form)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Product not found"})
	}

	profile, ok := getProfileFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Delete(c.Request().Context(), profile.ID, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

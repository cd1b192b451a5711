package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"stacksphere/internal/usecase"
	"stacksphere/pkg/errors"
	"stacksphere/pkg/response"
	"stacksphere/pkg/utils"
)

const defaultShowcaseLimit = 6

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

type productRequest struct {
	Name         string   `json:"name" validate:"required,max=120"`
	Image        string   `json:"image" validate:"required,url"`
	Description  string   `json:"description" validate:"required"`
	Tags         []string `json:"tags" validate:"max=10"`
	ExternalLink string   `json:"externalLink" validate:"omitempty,url"`
}

func (r productRequest) input() usecase.CreateProductInput {
	return usecase.CreateProductInput{
		Name:         r.Name,
		Image:        r.Image,
		Description:  r.Description,
		Tags:         r.Tags,
		ExternalLink: r.ExternalLink,
	}
}

type reportRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	products, total, err := h.productUseCase.ListProducts(
		c.Request().Context(),
		c.QueryParam("search"),
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) Featured(c echo.Context) error {
	products, err := h.productUseCase.Featured(c.Request().Context(), showcaseLimit(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, products)
}

func (h *ProductHandler) Trending(c echo.Context) error {
	products, err := h.productUseCase.Trending(c.Request().Context(), showcaseLimit(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUseCase.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *ProductHandler) Upvote(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.Upvote(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *ProductHandler) Report(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req reportRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.productUseCase.Report(c.Request().Context(), session, c.Param("id"), req.Reason); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Product reported"})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.SubmitProduct(c.Request().Context(), session, req.input())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, product)
}

func (h *ProductHandler) ListMyProducts(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.Error(c, err)
	}

	products, err := h.productUseCase.MyProducts(c.Request().Context(), session)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, products)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.UpdateMyProduct(c.Request().Context(), session, c.Param("id"), req.input())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.productUseCase.DeleteMyProduct(c.Request().Context(), session, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Product deleted"})
}

func showcaseLimit(c echo.Context) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 || limit > utils.MaxPageSize {
		return defaultShowcaseLimit
	}
	return limit
}

package http

import (
	"context"
	"net/http"

	"pricing/internal/core/application/usecases/commands"
	"pricing/internal/core/application/usecases/queries"
	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/generated/servers"
	"pricing/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

var _ servers.ServerInterface = (*Server)(nil)

type OrderPlacer interface {
	Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (commands.PlaceOrderResult, error)
}

type OrderReader interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
}

type PriceReader interface {
	Handle(ctx context.Context, query queries.GetProductPriceQuery) (queries.GetProductPriceQueryResponse, error)
}

type DemandReader interface {
	Handle(ctx context.Context, query queries.GetProductDemandQuery) (queries.GetProductDemandQueryResponse, error)
}

// Server implements servers.ServerInterface on top of the intake command and the read side queries.
type Server struct {
	// Command handlers
	placeOrderHandler OrderPlacer

	// Query handlers
	getOrderHandler         OrderReader
	getProductPriceHandler  PriceReader
	getProductDemandHandler DemandReader
}

func NewServer(
	placeOrderHandler OrderPlacer,
	getOrderHandler OrderReader,
	getProductPriceHandler PriceReader,
	getProductDemandHandler DemandReader,
) *Server {
	return &Server{
		placeOrderHandler:       placeOrderHandler,
		getOrderHandler:         getOrderHandler,
		getProductPriceHandler:  getProductPriceHandler,
		getProductDemandHandler: getProductDemandHandler,
	}
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var body servers.PlaceOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewPlaceOrderCommand(body.ProductId, body.Quantity)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		response := servers.Error{
			Code:    int32(result.StatusCode), //nolint:gosec // http status codes fit int32
			Message: result.Message,
		}
		if result.OrderID.Validate() == nil {
			id := openapi_types.UUID(result.OrderID.Bytes())
			response.OrderId = &id
		}
		return ctx.JSON(result.StatusCode, response)
	}

	return ctx.JSON(http.StatusOK, servers.PlaceOrderResponse{
		Message: result.Message,
		OrderId: result.OrderID.Bytes(),
	})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	order, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return queryError(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, servers.Order{
		OrderId:   order.OrderID.Bytes(),
		ProductId: order.ProductID,
		Quantity:  order.Quantity,
		Timestamp: order.Timestamp,
	})
}

// GetProductPrice handles GET /api/v1/products/{productId}/price.
func (s *Server) GetProductPrice(ctx echo.Context, productId string) error {
	query, err := queries.NewGetProductPriceQuery(productId)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	price, err := s.getProductPriceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return queryError(ctx, err, "Failed to retrieve price")
	}

	return ctx.JSON(http.StatusOK, servers.ProductPrice{
		ProductId:    price.ProductID,
		BasePrice:    price.BasePrice.InexactFloat64(),
		PriceFactor:  price.PriceFactor.InexactFloat64(),
		CurrentPrice: price.CurrentPrice.InexactFloat64(),
	})
}

// GetProductDemand handles GET /api/v1/products/{productId}/demand.
func (s *Server) GetProductDemand(ctx echo.Context, productId string) error {
	query, err := queries.NewGetProductDemandQuery(productId)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	demand, err := s.getProductDemandHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return queryError(ctx, err, "Failed to retrieve demand")
	}

	return ctx.JSON(http.StatusOK, servers.ProductDemand{
		ProductId: demand.ProductID,
		Demand:    demand.Demand,
	})
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{
		Code:    int32(code), //nolint:gosec // http status codes fit int32
		Message: message,
	})
}

// queryError hides internal failures behind fallback and passes not-found through.
func queryError(ctx echo.Context, err error, fallback string) error {
	code := errs.StatusCode(err)
	if code == http.StatusInternalServerError {
		return errorJSON(ctx, code, fallback)
	}
	return errorJSON(ctx, code, err.Error())
}

package stubserver

// Request types for the fixture's endpoints. The response side reuses the
// domain types directly, since this server exists to mirror the documented
// backend contract byte for byte.

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type principalResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type createProductRequest struct {
	Name              string  `json:"name"          validate:"required"`
	Description       string  `json:"description"`
	Price             float64 `json:"price"         validate:"gte=0"`
	StockQuantity     int     `json:"stock_quantity" validate:"gte=0"`
	Category          string  `json:"category"`
	SKU               string  `json:"sku"           validate:"required"`
	LowStockThreshold int     `json:"low_stock_threshold" validate:"gte=0"`
	ImageURL          string  `json:"image_url"`
}

// updateProductRequest uses pointers so absent fields stay untouched. SKU
// is present only to detect (and reject) attempts to change it.
type updateProductRequest struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	Price             *float64 `json:"price"`
	StockQuantity     *int     `json:"stock_quantity"`
	Category          *string  `json:"category"`
	LowStockThreshold *int     `json:"low_stock_threshold"`
	ImageURL          *string  `json:"image_url"`
	SKU               *string  `json:"sku"`
}

type orderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

type createOrderRequest struct {
	CustomerName  string             `json:"customer_name"  validate:"required"`
	CustomerEmail string             `json:"customer_email" validate:"required"`
	Items         []orderItemRequest `json:"items"          validate:"required,min=1,dive"`
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

type messageResponse struct {
	Message string `json:"message"`
}

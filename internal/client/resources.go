package client

import (
	"context"
	"fmt"
	"net/http"
)

// Resource mapea los verbos CRUD de /{path} y /{path}/{id} a Request.
type Resource struct {
	c    *Client
	path string
}

func (r Resource) List(ctx context.Context, out any) error {
	return r.c.Request(ctx, r.path, RequestOptions{}, out)
}

func (r Resource) Get(ctx context.Context, id any, out any) error {
	return r.c.Request(ctx, r.item(id), RequestOptions{}, out)
}

func (r Resource) Create(ctx context.Context, body any, out any) error {
	return r.c.Request(ctx, r.path, RequestOptions{Method: http.MethodPost, Body: body}, out)
}

func (r Resource) Update(ctx context.Context, id any, body any, out any) error {
	return r.c.Request(ctx, r.item(id), RequestOptions{Method: http.MethodPut, Body: body}, out)
}

func (r Resource) Delete(ctx context.Context, id any, out any) error {
	return r.c.Request(ctx, r.item(id), RequestOptions{Method: http.MethodDelete}, out)
}

func (r Resource) item(id any) string {
	return fmt.Sprintf("%s/%v", r.path, id)
}

type OwnersAPI struct{ Resource }

// Pets lista las mascotas del dueño (GET /owners/{id}/pets).
func (a OwnersAPI) Pets(ctx context.Context, id any, out any) error {
	return a.c.Request(ctx, a.item(id)+"/pets", RequestOptions{}, out)
}

type PetsAPI struct{ Resource }

func (a PetsAPI) Types(ctx context.Context, out any) error {
	return a.c.Request(ctx, a.path+"/pet-types", RequestOptions{}, out)
}

func (c *Client) Owners() OwnersAPI { return OwnersAPI{Resource{c: c, path: "/owners"}} }

func (c *Client) Pets() PetsAPI { return PetsAPI{Resource{c: c, path: "/pets"}} }

func (c *Client) Vaccinations() Resource { return Resource{c: c, path: "/vaccinations"} }

func (c *Client) Consultations() Resource { return Resource{c: c, path: "/consultations"} }

func (c *Client) Laboratory() Resource { return Resource{c: c, path: "/laboratory"} }

func (c *Client) Surgery() Resource { return Resource{c: c, path: "/surgery"} }

func (c *Client) Appointments() Resource { return Resource{c: c, path: "/appointments"} }

// ShopAPI cubre catálogo, carrito, checkout y pedidos bajo /shop.
type ShopAPI struct {
	c *Client
}

func (c *Client) Shop() ShopAPI { return ShopAPI{c: c} }

type CartItem struct {
	ProductID int64 `json:"productId,omitempty"`
	ItemID    int64 `json:"itemId,omitempty"`
	Quantity  int   `json:"quantity,omitempty"`
}

func (s ShopAPI) Products(ctx context.Context, out any) error {
	return s.c.Request(ctx, "/shop/products", RequestOptions{}, out)
}

func (s ShopAPI) Product(ctx context.Context, id any, out any) error {
	return s.c.Request(ctx, fmt.Sprintf("/shop/products/%v", id), RequestOptions{}, out)
}

func (s ShopAPI) Cart(ctx context.Context, out any) error {
	return s.c.Request(ctx, "/shop/cart", RequestOptions{}, out)
}

func (s ShopAPI) AddToCart(ctx context.Context, productID int64, quantity int, out any) error {
	body := CartItem{ProductID: productID, Quantity: quantity}
	return s.c.Request(ctx, "/shop/cart/add", RequestOptions{Method: http.MethodPost, Body: body}, out)
}

func (s ShopAPI) UpdateCartItem(ctx context.Context, itemID int64, quantity int, out any) error {
	body := CartItem{ItemID: itemID, Quantity: quantity}
	return s.c.Request(ctx, "/shop/cart/update", RequestOptions{Method: http.MethodPut, Body: body}, out)
}

func (s ShopAPI) RemoveCartItem(ctx context.Context, itemID int64, out any) error {
	body := CartItem{ItemID: itemID}
	return s.c.Request(ctx, "/shop/cart/remove", RequestOptions{Method: http.MethodDelete, Body: body}, out)
}

func (s ShopAPI) Checkout(ctx context.Context, out any) error {
	return s.c.Request(ctx, "/shop/checkout", RequestOptions{Method: http.MethodPost}, out)
}

func (s ShopAPI) Orders(ctx context.Context, out any) error {
	return s.c.Request(ctx, "/shop/orders", RequestOptions{}, out)
}

func (s ShopAPI) Order(ctx context.Context, id any, out any) error {
	return s.c.Request(ctx, fmt.Sprintf("/shop/orders/%v", id), RequestOptions{}, out)
}

package httpserver

import (
	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/car_export/pkg/middleware/auth"
)

type Deps struct {
	Products   *ProductHTTP
	Brands     *BrandHTTP
	Categories *CategoryHTTP
	Blogs      *BlogHTTP
	FAQ        *FAQHTTP
	Hero       *HeroHTTP
	Contact    *ContactHTTP
	Auth       *AuthHTTP
	Health     *HealthHTTP

	TokenAuth *middleware.TokenAuth

	// UploadsPrefix and UploadsDir serve locally stored files when both are set.
	UploadsPrefix string
	UploadsDir    string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", d.Health.Live)
	e.GET("/health/ready", d.Health.Ready)

	if d.UploadsPrefix != "" && d.UploadsDir != "" {
		e.Static(d.UploadsPrefix, d.UploadsDir)
	}

	admin := d.TokenAuth.RequireAdmin
	api := e.Group("/api")

	products := api.Group("/products")
	products.GET("", d.Products.GetProducts)
	products.GET("/search", d.Products.SearchProducts)
	products.GET("/:id", d.Products.GetProduct)
	products.POST("", d.Products.CreateProduct, admin)
	products.PUT("/:id", d.Products.UpdateProduct, admin)
	products.DELETE("/:id", d.Products.DeleteProduct, admin)

	brands := api.Group("/brands")
	brands.GET("", d.Brands.GetBrands)
	brands.GET("/:id", d.Brands.GetBrand)
	brands.POST("", d.Brands.CreateBrand, admin)
	brands.PUT("/:id", d.Brands.UpdateBrand, admin)
	brands.DELETE("/:id", d.Brands.DeleteBrand, admin)

	categories := api.Group("/categories")
	categories.GET("", d.Categories.GetCategories)
	categories.GET("/:id", d.Categories.GetCategory)
	categories.POST("", d.Categories.CreateCategory, admin)
	categories.PUT("/:id", d.Categories.UpdateCategory, admin)
	categories.DELETE("/:id", d.Categories.DeleteCategory, admin)

	blogs := api.Group("/blogs")
	blogs.GET("", d.Blogs.GetBlogs)
	blogs.GET("/:id", d.Blogs.GetBlog)
	blogs.POST("", d.Blogs.CreateBlog, admin)
	blogs.PUT("/:id", d.Blogs.UpdateBlog, admin)
	blogs.DELETE("/:id", d.Blogs.DeleteBlog, admin)

	faq := api.Group("/faq")
	faq.GET("", d.FAQ.GetFAQs)
	faq.GET("/:id", d.FAQ.GetFAQ)
	faq.POST("", d.FAQ.CreateFAQ, admin)
	faq.PUT("/reorder", d.FAQ.ReorderFAQ, admin)
	faq.PUT("/:id", d.FAQ.UpdateFAQ, admin)
	faq.DELETE("/:id", d.FAQ.DeleteFAQ, admin)
	faq.POST("/:id/move", d.FAQ.MoveFAQ, admin)

	hero := api.Group("/hero")
	hero.GET("", d.Hero.GetSlides)
	hero.GET("/:id", d.Hero.GetSlide)
	hero.POST("", d.Hero.CreateSlide, admin)
	hero.PUT("/reorder", d.Hero.ReorderSlides, admin)
	hero.PUT("/:id", d.Hero.UpdateSlide, admin)
	hero.DELETE("/:id", d.Hero.DeleteSlide, admin)
	hero.POST("/:id/move", d.Hero.MoveSlide, admin)

	contact := api.Group("/contact")
	contact.POST("", d.Contact.SubmitContact)
	contact.GET("", d.Contact.GetContacts, admin)
	contact.PATCH("/:id", d.Contact.UpdateContactStatus, admin)
	contact.DELETE("/:id", d.Contact.DeleteContact, admin)

	api.POST("/auth", d.Auth.Login)
	api.POST("/auth/logout", d.Auth.Logout)
	api.PUT("/auth/password", d.Auth.ChangePassword, d.TokenAuth.RequireAuth)
}

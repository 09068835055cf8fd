package main

import (
	"database/sql"
	"errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/blog"
	"github.com/Zachkp/folio/config"
	"github.com/Zachkp/folio/photography"
	"github.com/Zachkp/folio/showcase"
)

type site struct {
	cfg      config.Config
	db       *sql.DB
	admin    *adminAuth
	posts    *blog.Store
	photos   *photography.Store
	projects *showcase.Catalog
}

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	gin.SetMode(cfg.GinMode)

	db, err := openDB(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	// Clean up old visitor data for privacy compliance (run in background)
	go cleanupOldVisitorData(db)

	s := newSite(cfg, db, os.DirFS(cfg.ContentDir))
	r := s.router()
	r.Static("/static", cfg.StaticDir)
	r.Static("/photos", path.Join(cfg.ContentDir, "photography"))

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func newSite(cfg config.Config, db *sql.DB, content fs.FS) *site {
	projects, err := showcase.Load(content, "showcase.yaml")
	if err != nil {
		log.Printf("Showcase unavailable: %v", err)
		projects = showcase.New(nil)
	}
	return &site{
		cfg:      cfg,
		db:       db,
		admin:    newAdminAuth(),
		posts:    blog.NewStore(content, "blog"),
		photos:   photography.NewStore(content, "photography", "/photos"),
		projects: projects,
	}
}

var templateFuncs = template.FuncMap{
	"dateSection":     photography.DateSectionID,
	"cameraSection":   photography.CameraSectionID,
	"locationSection": photography.LocationSectionID,
	"hasLink":         showcase.HasLink,
	"join":            strings.Join,
	"lower":           strings.ToLower,
	"year":            func() int { return time.Now().Year() },
}

func (s *site) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetFuncMap(templateFuncs)
	r.LoadHTMLGlob(s.cfg.TemplatesGlob)

	r.Use(s.visitorTrackingMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", s.page(c, SiteTitle, gin.H{
			"tagline":  Tagline,
			"posts":    s.posts.Featured(c),
			"projects": s.projects.Featured(),
		}))
	})

	r.GET("/about", func(c *gin.Context) {
		c.HTML(http.StatusOK, "about.html", s.page(c, "About", gin.H{
			"aboutMeContent": AboutMe,
		}))
	})

	// HTMX fragments
	r.GET("/work-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "work-content.html", gin.H{"roles": WorkHistory})
	})
	r.GET("/education-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "education-content.html", gin.H{"roles": Education})
	})
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{"title": "Contact Me"})
	})
	r.POST("/contact", s.contact)

	r.GET("/blog", s.blogIndex)
	r.GET("/blog/tag/:tag", s.blogIndex)
	r.GET("/blog/:id", s.blogPost)

	r.GET("/photography", s.photography)
	r.GET("/photography/:sectionId", s.photoSection)

	r.GET("/showcase", s.showcase)

	r.GET("/background.svg", s.backgroundSVG)
	r.GET("/ws/background", s.backgroundWS)

	api := r.Group("/api")
	api.GET("/posts", func(c *gin.Context) {
		if tag := c.Query("tag"); tag != "" {
			c.JSON(http.StatusOK, s.posts.ByTag(c, tag))
			return
		}
		c.JSON(http.StatusOK, s.posts.List(c))
	})
	api.GET("/posts/:id", func(c *gin.Context) {
		p, err := s.posts.Get(c, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, p)
	})
	api.GET("/photos", func(c *gin.Context) {
		photos := s.photos.List(c)
		switch c.Query("bw") {
		case "true", "1":
			photos = photography.FilterByMonochrome(photos, true)
		case "false", "0":
			photos = photography.FilterByMonochrome(photos, false)
		}
		c.JSON(http.StatusOK, photos)
	})
	api.GET("/photos/groups", func(c *gin.Context) {
		photos, _ := colorFilter(c, s.photos.List(c))
		switch c.DefaultQuery("by", "date") {
		case "date":
			c.JSON(http.StatusOK, photography.GroupByDate(photos))
		case "camera":
			c.JSON(http.StatusOK, photography.GroupByCamera(photos))
		case "location":
			c.JSON(http.StatusOK, photography.GroupByLocation(photos))
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "by must be date, camera or location"})
		}
	})
	api.GET("/photos/sections/:sectionId", func(c *gin.Context) {
		res, err := photography.FindSection(s.photos.List(c), c.Param("sectionId"))
		if err != nil {
			c.JSON(sectionStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, res)
	})
	api.GET("/projects", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.projects.Filter(projectQuery(c)))
	})

	s.setupAdminRoutes(r)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "404.html", s.page(c, "Not Found", nil))
	})
	return r
}

// page merges the values every full page template needs into data.
func (s *site) page(c *gin.Context, title string, data gin.H) gin.H {
	h := gin.H{
		"siteTitle": SiteTitle,
		"title":     title,
		"path":      c.Request.URL.Path,
		"baseURL":   s.cfg.BaseURL,
	}
	for k, v := range data {
		h[k] = v
	}
	return h
}

func (s *site) blogIndex(c *gin.Context) {
	tag := c.Param("tag")
	if tag == "" {
		tag = c.Query("tag")
	}
	posts := s.posts.List(c)
	if tag != "" {
		posts = s.posts.ByTag(c, tag)
	}
	c.HTML(http.StatusOK, "blog.html", s.page(c, "Blog", gin.H{
		"posts":   posts,
		"tag":     tag,
		"tags":    s.posts.Tags(c),
		"archive": s.posts.Archive(c),
	}))
}

func (s *site) blogPost(c *gin.Context) {
	p, err := s.posts.Get(c, c.Param("id"))
	if errors.Is(err, blog.ErrNotFound) {
		c.HTML(http.StatusNotFound, "404.html", s.page(c, "Not Found", nil))
		return
	}
	out, err := blog.Render(p)
	if err != nil {
		log.Printf("Error rendering post %s: %v", p.ID, err)
		c.HTML(http.StatusInternalServerError, "404.html", s.page(c, "Error", nil))
		return
	}
	c.HTML(http.StatusOK, "post.html", s.page(c, p.Title, gin.H{
		"post":     p,
		"body":     out.HTML,
		"contents": out.Contents,
	}))
}

func (s *site) photography(c *gin.Context) {
	photos, color := colorFilter(c, s.photos.List(c))
	view := c.DefaultQuery("view", "date")
	data := gin.H{
		"intro": PhotographyIntro,
		"view":  view,
		"color": color,
		"total": len(photos),
	}
	switch view {
	case "camera":
		data["keyGroups"] = photography.GroupByCamera(photos)
	case "location":
		data["keyGroups"] = photography.GroupByLocation(photos)
	default:
		data["view"] = "date"
		data["dateGroups"] = photography.GroupByDate(photos)
	}
	c.HTML(http.StatusOK, "photography.html", s.page(c, "Photography", data))
}

// colorFilter narrows photos by the color query ("bw" or "color") ahead of
// grouping. Anything else keeps every photo and reports "".
func colorFilter(c *gin.Context, photos []photography.Photo) ([]photography.Photo, string) {
	switch c.Query("color") {
	case "bw":
		return photography.FilterByMonochrome(photos, true), "bw"
	case "color":
		return photography.FilterByMonochrome(photos, false), "color"
	}
	return photos, ""
}

func (s *site) photoSection(c *gin.Context) {
	res, err := photography.FindSection(s.photos.List(c), c.Param("sectionId"))
	if err != nil {
		status := sectionStatus(err)
		c.HTML(status, "404.html", s.page(c, http.StatusText(status), gin.H{
			"error": err.Error(),
		}))
		return
	}
	c.HTML(http.StatusOK, "photo-section.html", s.page(c, res.Title, gin.H{
		"section": res,
	}))
}

func sectionStatus(err error) int {
	if errors.Is(err, photography.ErrInvalidSection) {
		return http.StatusBadRequest
	}
	return http.StatusNotFound
}

func (s *site) showcase(c *gin.Context) {
	q := projectQuery(c)
	c.HTML(http.StatusOK, "showcase.html", s.page(c, "Showcase", gin.H{
		"projects":     s.projects.Filter(q),
		"technologies": s.projects.Technologies(),
		"query":        q,
		"filtered":     !q.Empty(),
	}))
}

func projectQuery(c *gin.Context) showcase.Query {
	op := showcase.OR
	if strings.EqualFold(c.Query("op"), string(showcase.AND)) {
		op = showcase.AND
	}
	return showcase.Query{
		Technologies: c.QueryArray("tech"),
		Operator:     op,
		Search:       c.Query("q"),
	}
}

// Handle contact form submission with HTMX
func (s *site) contact(c *gin.Context) {
	m := ContactMessage{
		Name:    c.PostForm("fullName"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	}
	if err := m.validate(); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": err.Error()})
		return
	}
	if err := saveContactMessage(s.db, &m); err != nil {
		log.Printf("Error saving contact message: %v", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	if s.cfg.SMTPConfigured() {
		go func(m ContactMessage) {
			if err := sendContactEmail(s.cfg, m); err != nil {
				log.Printf("Error sending email: %v", err)
				return
			}
			markEmailed(s.db, m.ID)
		}(m)
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}

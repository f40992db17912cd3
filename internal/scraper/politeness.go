package scraper

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/time/rate"
)

// DomainManager enforces politeness per host: a rate limiter with the
// configured request interval, and a cached robots.txt group.
type DomainManager struct {
	mu          sync.Mutex
	interval    time.Duration
	userAgent   string
	limiters    map[string]*rate.Limiter
	robotsCache map[string]*robotstxt.Group
}

func NewDomainManager(interval time.Duration, userAgent string) *DomainManager {
	if interval <= 0 {
		interval = time.Second
	}
	return &DomainManager{
		interval:    interval,
		userAgent:   userAgent,
		limiters:    make(map[string]*rate.Limiter),
		robotsCache: make(map[string]*robotstxt.Group),
	}
}

// Wait blocks until the host's limiter allows the next request.
func (d *DomainManager) Wait(ctx context.Context, targetURL string) error {
	u, err := url.Parse(targetURL)
	if err != nil {
		return err
	}

	d.mu.Lock()
	limiter, exists := d.limiters[u.Host]
	if !exists {
		// One request per interval, burst of one.
		limiter = rate.NewLimiter(rate.Every(d.interval), 1)
		d.limiters[u.Host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// IsAllowed consults the host's robots.txt (cached after the first call).
// Unreachable or malformed robots.txt counts as allowed.
func (d *DomainManager) IsAllowed(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	group, exists := d.robotsCache[u.Host]
	if !exists {
		group = d.fetchRobotsGroup(u)
		d.robotsCache[u.Host] = group
	}

	if group == nil {
		return true
	}
	return group.Test(u.Path)
}

func (d *DomainManager) fetchRobotsGroup(u *url.URL) *robotstxt.Group {
	client := http.Client{Timeout: 10 * time.Second}

	req, err := http.NewRequest("GET", u.Scheme+"://"+u.Host+"/robots.txt", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := client.Do(req)
	if err != nil || resp.StatusCode != 200 {
		return nil
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}
	return data.FindGroup(d.userAgent)
}

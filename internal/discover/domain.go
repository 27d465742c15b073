package discover

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobscreen-engine/internal/store"
)

// Job boards and aggregators are never a company's own domain; a hit
// on one of these says nothing about the company's legitimacy.
var domainBlocklist = []string{
	"linkedin.com",
	"indeed.com",
	"naukri.com",
	"internshala.com",
	"glassdoor.com",
	"ziprecruiter.com",
	"monster.com",
	"careerbuilder.com",
	"simplyhired.com",
	"crunchbase.com",
	"wikipedia.org",
	"facebook.com",
	"instagram.com",

	// ATS / job boards
	"greenhouse.io",
	"boards.greenhouse.io",
	"lever.co",
	"myworkdayjobs.com",
	"workday.com",
	"smartrecruiters.com",
	"icims.com",
	"jobvite.com",
	"applytojob.com",
}

// Finder resolves a company name to its website domain via web search,
// caching hits in sqlite. Zero value is not usable; use NewFinder.
type Finder struct {
	DB      *sql.DB
	Limiter *HostLimiter
	Client  *http.Client

	// Extra blocked domains on top of the built-in list.
	Blocked []string
}

func NewFinder(db *sql.DB, perHost float64, blocked []string) *Finder {
	return &Finder{
		DB:      db,
		Limiter: NewHostLimiter(perHost, 1),
		Client:  &http.Client{Timeout: 12 * time.Second},
		Blocked: blocked,
	}
}

// GetOrFind returns the company's domain, consulting the cache first
// and falling back to search. "" means no usable domain was found;
// that is not an error.
func (f *Finder) GetOrFind(ctx context.Context, company string) (string, error) {
	d, err := store.GetCompanyDomain(ctx, f.DB, company)
	if err != nil {
		return "", err
	}
	if d != "" {
		return d, nil
	}

	found, err := f.searchDDG(ctx, company)
	if err != nil {
		return "", err
	}
	if found == "" || f.blocked(found) {
		return "", nil
	}

	if err := store.UpsertCompanyDomain(ctx, f.DB, company, found); err != nil {
		return "", err
	}
	return found, nil
}

func (f *Finder) searchDDG(ctx context.Context, company string) (string, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return "", nil
	}

	query := fmt.Sprintf("%s official website", sanitizeCompanyForSearch(company))
	searchURL := "https://duckduckgo.com/html/?q=" + url.QueryEscape(query)

	if err := f.Limiter.WaitURL(ctx, searchURL); err != nil {
		return "", err
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		// network trouble is a miss, not a failure
		return "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", nil
	}
	return f.firstResultHost(doc), nil
}

// firstResultHost scans the DDG HTML result links (<a class="result__a">)
// and returns the first host that isn't a job board or aggregator.
func (f *Finder) firstResultHost(doc *goquery.Document) string {
	var best string
	doc.Find("a.result__a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" {
			return true
		}

		host := hostFromURL(decodeDDGRedirect(href))
		if host == "" {
			return true
		}

		host = strings.ToLower(strings.TrimPrefix(host, "www."))
		if f.blocked(host) {
			return true
		}

		best = host
		return false
	})
	return best
}

func (f *Finder) blocked(host string) bool {
	for _, b := range domainBlocklist {
		if host == b || strings.HasSuffix(host, "."+b) {
			return true
		}
	}
	for _, b := range f.Blocked {
		if host == b || strings.HasSuffix(host, "."+b) {
			return true
		}
	}
	return false
}

func decodeDDGRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	// DDG sometimes uses /l/?uddg=<urlencoded>
	if uddg := u.Query().Get("uddg"); uddg != "" {
		if dec, err := url.QueryUnescape(uddg); err == nil && dec != "" {
			return dec
		}
	}
	return href
}

func hostFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

func sanitizeCompanyForSearch(s string) string {
	s = strings.TrimSpace(s)
	repls := []string{
		", Inc.", "", " Inc.", "", " Inc", "",
		", LLC", "", " LLC", "",
		", Ltd.", "", " Ltd.", "", " Ltd", "",
		" Pvt.", "", " Pvt", "",
		" Recruiting", "",
		" Staffing", "",
	}
	r := strings.NewReplacer(repls...)
	s = r.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

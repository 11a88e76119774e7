package view

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type Page struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// NewPage 生成带前后页链接的分页结果，第一页的链接不带 page 参数
func NewPage(r *http.Request, count int64, page, size int, results any) Page {
	p := Page{Count: count, Results: results}
	if int64(page*size) < count {
		next := pageLink(r, page+1)
		p.Next = &next
	}
	if page > 1 {
		prev := pageLink(r, page-1)
		p.Previous = &prev
	}
	return p
}

func pageLink(r *http.Request, page int) string {
	u := url.URL{Scheme: scheme(r), Host: r.Host, Path: r.URL.Path}
	q := r.URL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// BaseURL scheme://host，反向代理下优先取 X-Forwarded-Proto
func BaseURL(r *http.Request) string {
	return scheme(r) + "://" + r.Host
}

// Absolute 相对地址补全为绝对地址
func Absolute(base, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return strings.TrimRight(base, "/") + ref
}

func scheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

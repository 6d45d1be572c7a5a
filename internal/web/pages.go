package web

import "html/template"

// The two HTML surfaces: a landing page with the query-syntax hints and a
// results page with pagination. Styling mirrors the classic single-box
// search layout.

var indexPage = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="ru">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Search</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:sans-serif;background:#f5f5f5;min-height:100vh;display:flex;align-items:center;justify-content:center}
.container{text-align:center;padding:20px}
h1{font-size:3rem;margin-bottom:30px}
.search-form{display:flex;max-width:600px;margin:0 auto 30px}
input[type="text"]{flex:1;padding:15px 20px;font-size:18px;border:2px solid #ddd;border-radius:25px 0 0 25px;outline:none}
input[type="text"]:focus{border-color:#4a90d9}
button{padding:15px 30px;font-size:18px;background:#4a90d9;color:white;border:none;border-radius:0 25px 25px 0;cursor:pointer}
button:hover{background:#357abd}
.hints{background:white;padding:25px;border-radius:10px;box-shadow:0 2px 10px rgba(0,0,0,0.1);max-width:600px;margin:0 auto;text-align:left}
.hints h3{margin:15px 0 10px;color:#555}
.hints h3:first-child{margin-top:0}
.hints ul{padding-left:20px}
.hints li{margin:5px 0}
.hints code{background:#f0f0f0;padding:2px 6px;border-radius:3px}
</style>
</head>
<body>
<div class="container">
<h1>Search</h1>
<form action="/search" method="get" class="search-form">
<input type="text" name="q" placeholder="Enter search query..." autofocus>
<button type="submit">Search</button>
</form>
<div class="hints">
<h3>Query syntax:</h3>
<ul>
<li><code>word1 word2</code> - both words (AND)</li>
<li><code>word1 || word2</code> - any word (OR)</li>
<li><code>!word</code> - exclude word (NOT)</li>
<li><code>(word1 || word2) word3</code> - grouping</li>
</ul>
</div>
</div>
</body>
</html>`))

// resultsData feeds the results template.
type resultsData struct {
	Query       string
	TotalCount  int
	QueryTimeMs string
	Results     []resultRow
	Page        int
	TotalPages  int
	HasPrev     bool
	HasNext     bool
	PrevPage    int
	NextPage    int
}

type resultRow struct {
	Title string
	URL   string
}

var resultsPage = template.Must(template.New("results").Parse(`<!DOCTYPE html>
<html lang="ru">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Query}} - Search Results</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:sans-serif;background:#f5f5f5;line-height:1.6}
.container{max-width:900px;margin:0 auto;padding:20px}
header{display:flex;align-items:center;gap:20px;margin-bottom:20px;padding-bottom:20px;border-bottom:1px solid #ddd}
header h1{font-size:1.5rem}
header h1 a{color:inherit;text-decoration:none}
.search-form{display:flex;flex:1;max-width:500px}
input[type="text"]{flex:1;padding:10px 15px;font-size:16px;border:2px solid #ddd;border-radius:20px 0 0 20px;outline:none}
button{padding:10px 20px;font-size:16px;background:#4a90d9;color:white;border:none;border-radius:0 20px 20px 0;cursor:pointer}
.stats{color:#666;margin-bottom:20px}
.result{background:white;padding:20px;margin-bottom:15px;border-radius:8px;box-shadow:0 1px 5px rgba(0,0,0,0.1)}
.result h3{margin-bottom:5px}
.result h3 a{color:#1a0dab;text-decoration:none}
.result h3 a:hover{text-decoration:underline}
.result cite{color:#006621;font-style:normal;font-size:14px;word-break:break-all}
.pagination{display:flex;justify-content:center;align-items:center;gap:20px;padding:20px 0}
.pagination a{color:#4a90d9;text-decoration:none;padding:10px 20px;border:1px solid #4a90d9;border-radius:5px}
.pagination a:hover{background:#4a90d9;color:white}
.no-results{text-align:center;padding:50px;background:white;border-radius:10px}
</style>
</head>
<body>
<div class="container">
<header>
<h1><a href="/">Search</a></h1>
<form action="/search" method="get" class="search-form">
<input type="text" name="q" value="{{.Query}}">
<button type="submit">Search</button>
</form>
</header>
<div class="stats">
Found: <strong>{{.TotalCount}}</strong> documents
in <strong>{{.QueryTimeMs}}</strong> ms
</div>
{{if .Results}}
<div class="results">
{{range .Results}}
<div class="result">
<h3><a href="{{.URL}}" target="_blank">{{.Title}}</a></h3>
<cite>{{.URL}}</cite>
</div>
{{end}}
</div>
<div class="pagination">
{{if .HasPrev}}<a href="/search?q={{.Query}}&page={{.PrevPage}}">Previous</a>{{end}}
<span>Page {{.Page}} of {{.TotalPages}}</span>
{{if .HasNext}}<a href="/search?q={{.Query}}&page={{.NextPage}}">Next</a>{{end}}
</div>
{{else}}
<div class="no-results">
<p>No results found for <strong>{{.Query}}</strong></p>
</div>
{{end}}
</div>
</body>
</html>`))

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

const pageTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Claim Poster</title>
  <link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css" rel="stylesheet">
</head>
<body>
<nav class="navbar navbar-light bg-light mb-4">
  <div class="container">
    <span class="navbar-brand">Claim Poster</span>
    <div id="login-area" class="d-flex align-items-center">
      {{if .LoggedIn}}
      <span class="me-3"><b>{{.Username}}</b></span>
      <form method="post" action="/claims/refresh" class="d-inline me-2">
        <button class="btn btn-outline-primary btn-sm" type="submit">Refresh</button>
      </form>
      <form method="post" action="/logout" class="d-inline">
        <button class="btn btn-outline-secondary btn-sm" type="submit">Logout</button>
      </form>
      {{else}}
      <form class="d-flex align-items-center" method="post" action="/login" autocomplete="off">
        <input type="text" class="form-control me-2" name="username" placeholder="Hive username" autocomplete="username" style="width: 180px;">
        <button class="btn btn-primary me-2" type="submit">Login &amp; Sign</button>
      </form>
      {{end}}
    </div>
  </div>
</nav>

<div class="container">
  <div id="toast-container">
    {{range .Notices}}
    <div class="alert alert-{{.Level}} alert-dismissible" role="alert">{{.Message}}</div>
    {{end}}
  </div>

  <div id="claims-container">
    {{range .Claims}}
    <div class="claim-container" id="{{.ID}}">
      {{if .Composing}}
      <div class="card shadow-sm mb-4">
        <div class="card-header bg-primary text-white d-flex justify-content-between align-items-center">
          <h5 class="mb-0">Create Post for Invoice: {{.Invoice}}</h5>
          <form method="post" action="/claims/{{.ID}}/toggle" class="d-inline">
            <button class="btn btn-light btn-sm" type="submit">Back to Claim</button>
          </form>
        </div>
        <div class="card-body">
          <form method="post" action="/claims/{{.ID}}/post">
            <div class="mb-3">
              <label for="postTitle-{{.ID}}" class="form-label">Title</label>
              <input type="text" class="form-control" id="postTitle-{{.ID}}" name="title" value="{{.DraftTitle}}" required>
            </div>
            <div class="mb-3">
              <label for="postBody-{{.ID}}" class="form-label">Body</label>
              <div class="alert alert-info mb-2">
                <strong>Important:</strong> Your review must include at least 2 pictures of the product/service to qualify for the claim.
                Use markdown image syntax: ![description](image_url)
              </div>
              <textarea class="form-control" id="postBody-{{.ID}}" name="body" rows="6" required>{{.DraftBody}}</textarea>
              <div class="form-text">Write your post in Markdown format. Remember to include at least 2 images!</div>
            </div>
            <button type="submit" class="btn btn-primary">Submit Post</button>
          </form>
          <form method="post" action="/upload" enctype="multipart/form-data" class="mt-3">
            <label for="imageUpload-{{.ID}}" class="form-label">Upload Image</label>
            <div class="input-group">
              <input type="file" class="form-control" id="imageUpload-{{.ID}}" name="file" accept="image/*">
              <button class="btn btn-outline-secondary" type="submit">Upload</button>
            </div>
          </form>
        </div>
      </div>
      {{else}}
      <div class="card shadow-sm mb-4">
        <div class="card-header bg-primary text-white d-flex justify-content-between align-items-center">
          <h5 class="mb-0">Invoice: {{.Invoice}}</h5>
          <div class="d-flex align-items-center">
            <span class="badge bg-light text-primary me-2">{{.Amount}}</span>
            <form method="post" action="/claims/{{.ID}}/toggle" class="d-inline">
              <button class="btn btn-light btn-sm" type="submit">Claim</button>
            </form>
          </div>
        </div>
        <div class="card-body">
          <div class="row g-3">
            <div class="col-md-6">
              <p class="mb-1"><strong>Business:</strong> {{.Business}}</p>
              <p class="mb-1"><strong>Country:</strong> {{.Country}}</p>
              <p class="mb-1"><strong>Date:</strong> {{.Date}}</p>
              <p class="mb-1"><strong>Payment Method:</strong> {{.PaymentMethod}}</p>
            </div>
            <div class="col-md-6">
              <p class="mb-1"><strong>Claim Value:</strong> {{.ClaimValue}}</p>
              <p class="mb-1"><strong>Percentage:</strong> {{.Percentage}}</p>
              <p class="mb-1"><strong>Transaction Amount:</strong> {{.TransactionAmount}}</p>
            </div>
          </div>
          {{if .Guides}}
          <div class="mt-3">
            <h6 class="mb-2">Guides</h6>
            <div class="table-responsive">
              <table class="table table-sm">
                <thead>
                  <tr><th>Name</th><th>Percent</th><th>Guides Percent</th><th>Value</th></tr>
                </thead>
                <tbody>
                  {{range .Guides}}
                  <tr><td>{{.Name}}</td><td>{{.Percent}}</td><td>{{.GuidesPercent}}</td><td>{{.Value}}</td></tr>
                  {{end}}
                </tbody>
              </table>
            </div>
          </div>
          {{end}}
          {{if .Onborder}}
          <div class="mt-3">
            <h6 class="mb-2">Onborder</h6>
            <div class="table-responsive">
              <table class="table table-sm">
                <tr><td><strong>Name:</strong></td><td>{{.Onborder.Name}}</td></tr>
                <tr><td><strong>Percent:</strong></td><td>{{.Onborder.Percent}}</td></tr>
                <tr><td><strong>Value:</strong></td><td>{{.Onborder.Value}}</td></tr>
              </table>
            </div>
          </div>
          {{end}}
        </div>
      </div>
      {{end}}
    </div>
    {{end}}
    {{if and .LoggedIn .Fetched (not .Claims)}}
    <div class="alert alert-info">No claims found.</div>
    {{end}}
  </div>
</div>
</body>
</html>
`

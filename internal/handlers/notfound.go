package handlers

// notFoundHTML is the fixed page served for unknown aliases. Redirects are
// followed by browsers, not API clients, so the error is a human-readable
// page rather than the JSON error shape the API uses.
const notFoundHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <meta name="robots" content="noindex, nofollow" />
  <title>Page Not Found | 404</title>
  <style>
    body {
      font-family: Arial, sans-serif;
      margin: 0;
      padding: 0;
      background-color: #f8f8f8;
      color: #333;
      text-align: center;
    }
    .container {
      padding: 50px;
    }
    h1 {
      font-size: 48px;
      margin-bottom: 20px;
    }
    p {
      font-size: 18px;
      margin-bottom: 30px;
    }
  </style>
</head>
<body>
  <div class="container">
    <h1>Something's wrong here.</h1>
    <p>
      This is a 404 error, which means you've clicked on a bad link or
      entered an invalid URL.
    </p>
    <p>P.S. Short links are case-sensitive.</p>
  </div>
</body>
</html>
`

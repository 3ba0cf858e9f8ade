package workspace

import "github.com/pagesmith/pagesmith-cli/pkg/models"

const defaultIndexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>My Awesome Page</title>
    <link rel="stylesheet" href="styles.css">
</head>
<body>
    <h1>Welcome to the Live HTML Editor!</h1>
    <p>
        Edit the code in the different tabs above and see the changes live here.
        This editor supports HTML, CSS, and JavaScript.
    </p>
    <button id="my-button">Click Me!</button>
    <script src="script.js"></script>
    <div id="message-box"></div>
</body>
</html>`

const defaultStylesCSS = `body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
    background-color: #f0fdf4;
    color: #166534;
    display: flex;
    flex-direction: column;
    align-items: center;
    justify-content: center;
    min-height: 100vh;
    text-align: center;
    padding: 2rem;
}
h1 {
    color: #065f46;
    font-weight: 700;
    margin-bottom: 1rem;
}
p {
    max-width: 600px;
    line-height: 1.5;
}
#my-button {
    background-color: #22c55e;
    color: white;
    padding: 10px 20px;
    border-radius: 8px;
    border: none;
    cursor: pointer;
    margin-top: 1rem;
    transition: background-color 0.3s ease;
}
#my-button:hover {
    background-color: #16a34a;
}`

const defaultScriptJS = `document.getElementById('my-button').addEventListener('click', () => {
    const messageBox = document.getElementById('message-box');
    if (messageBox) {
        messageBox.textContent = 'Button clicked!';
        messageBox.style.opacity = 1;
        setTimeout(() => {
            messageBox.style.opacity = 0;
        }, 3000);
    }
});`

// DefaultFiles returns the starter project a new workspace is seeded with.
func DefaultFiles() []models.File {
	return []models.File{
		{Name: "index.html", Content: defaultIndexHTML},
		{Name: "styles.css", Content: defaultStylesCSS},
		{Name: "script.js", Content: defaultScriptJS},
	}
}

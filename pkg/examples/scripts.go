package examples

import "github.com/pagesmith/pagesmith-cli/pkg/models"

func getScriptExamples() []ExampleSet {
	return []ExampleSet{
		{
			Name:        "Dark Mode Toggle",
			Description: "Button that switches a dark class on the page and remembers the choice",
			Files: []models.File{
				{
					Name:    "theme-toggle.html",
					Content: `<button id="theme-toggle" type="button">Toggle dark mode</button>`,
				},
				{
					Name: "theme-toggle.css",
					Content: `body.dark {
  background: #0f172a;
  color: #e2e8f0;
}`,
				},
				{
					Name: "theme-toggle.js",
					Content: `const toggle = document.getElementById('theme-toggle');
if (localStorage.getItem('theme') === 'dark') {
  document.body.classList.add('dark');
}
toggle?.addEventListener('click', () => {
  const dark = document.body.classList.toggle('dark');
  localStorage.setItem('theme', dark ? 'dark' : 'light');
});`,
				},
			},
		},
		{
			Name:        "Smooth Scroll",
			Description: "Scrolls smoothly to in-page anchors",
			Files: []models.File{
				{
					Name: "smooth-scroll.js",
					Content: `document.querySelectorAll('a[href^="#"]:not([href="#"])').forEach((link) => {
  link.addEventListener('click', (event) => {
    const target = document.querySelector(link.getAttribute('href'));
    if (!target) return;
    event.preventDefault();
    target.scrollIntoView({ behavior: 'smooth' });
  });
});`,
				},
			},
		},
	}
}

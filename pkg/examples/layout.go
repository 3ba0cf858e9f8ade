package examples

import "github.com/pagesmith/pagesmith-cli/pkg/models"

func getLayoutExamples() []ExampleSet {
	return []ExampleSet{
		{
			Name:        "Landing Page",
			Description: "Hero section with a call to action and a three column feature grid",
			Files: []models.File{
				{
					Name: "landing.html",
					Content: `<section class="hero">
  <h1>Build something people want</h1>
  <p>A short sentence that explains what the product does.</p>
  <a class="cta" href="#features">Learn more</a>
</section>
<section id="features" class="features">
  <article><h3>Fast</h3><p>Loads in the blink of an eye.</p></article>
  <article><h3>Simple</h3><p>No setup, no configuration.</p></article>
  <article><h3>Open</h3><p>Export everything as plain files.</p></article>
</section>`,
				},
				{
					Name: "landing.css",
					Content: `.hero {
  padding: 4rem 1rem;
  text-align: center;
  background: linear-gradient(135deg, #6366f1, #8b5cf6);
  color: white;
}

.cta {
  display: inline-block;
  margin-top: 1rem;
  padding: 0.75rem 1.5rem;
  border-radius: 9999px;
  background: white;
  color: #4f46e5;
  text-decoration: none;
}

.features {
  display: grid;
  grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
  gap: 1.5rem;
  padding: 3rem 1rem;
}`,
				},
			},
		},
		{
			Name:        "Sidebar Layout",
			Description: "Two column page with a fixed navigation sidebar",
			Files: []models.File{
				{
					Name: "sidebar.html",
					Content: `<div class="shell">
  <nav class="sidebar">
    <a href="#">Dashboard</a>
    <a href="#">Projects</a>
    <a href="#">Settings</a>
  </nav>
  <main class="content">
    <h2>Dashboard</h2>
    <p>Main content goes here.</p>
  </main>
</div>`,
				},
				{
					Name: "sidebar.css",
					Content: `.shell {
  display: grid;
  grid-template-columns: 220px 1fr;
  min-height: 100vh;
}

.sidebar {
  display: flex;
  flex-direction: column;
  gap: 0.5rem;
  padding: 1.5rem;
  background: #1e293b;
}

.sidebar a {
  color: #cbd5e1;
  text-decoration: none;
}

.content {
  padding: 2rem;
}`,
				},
			},
		},
	}
}

package examples

import "github.com/pagesmith/pagesmith-cli/pkg/models"

func getComponentExamples() []ExampleSet {
	return []ExampleSet{
		{
			Name:        "Card",
			Description: "Content card with an image, a title and a footer link",
			Files: []models.File{
				{
					Name: "card.html",
					Content: `<div class="card">
  <img src="https://placehold.co/600x300" alt="">
  <div class="card-body">
    <h3>Card title</h3>
    <p>Some quick example text to build on the card title.</p>
    <a href="#">Read more</a>
  </div>
</div>`,
				},
				{
					Name: "card.css",
					Content: `.card {
  max-width: 320px;
  overflow: hidden;
  border-radius: 12px;
  box-shadow: 0 4px 12px rgba(0, 0, 0, 0.1);
}

.card img {
  width: 100%;
  display: block;
}

.card-body {
  padding: 1rem;
}`,
				},
			},
		},
		{
			Name:        "Buttons",
			Description: "Primary, secondary and outline button styles",
			Files: []models.File{
				{
					Name: "buttons.css",
					Content: `.btn {
  padding: 0.5rem 1rem;
  border: 2px solid transparent;
  border-radius: 6px;
  font-weight: 600;
  cursor: pointer;
}

.btn-primary {
  background: #2563eb;
  color: white;
}

.btn-secondary {
  background: #e2e8f0;
  color: #1e293b;
}

.btn-outline {
  background: transparent;
  border-color: #2563eb;
  color: #2563eb;
}`,
				},
			},
		},
	}
}

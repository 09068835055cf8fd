package main

var (
	SiteTitle = "Zach Kordas-Potter"

	Tagline = `Software developer and film photographer. I build small, sturdy tools in Go
	and spend weekends chasing light with old cameras.`

	AboutMe = `I love building software that’s both useful and fun, and I’m always curious about how things work behind the scenes.
	Most of my projects start with a simple idea and turn into a chance to learn something new, whether it’s exploring a
	different language, experimenting with tools, or solving tricky problems.
	When I’m not coding, you’ll usually find me loading a roll of film, walking a new city with a camera,
	or writing up what I learned on the blog.`

	PhotographyIntro = `Everything here was shot on film. Photos are grouped by when, where and on which camera
	they were taken; the black and white rolls get their own view.`
)

type Role struct {
	Title        string
	Org          string
	StartDate    string
	EndDate      string
	BulletPoints []string
}

var WorkHistory = []Role{
	{
		Title:     "Presentation Expert",
		Org:       "Target",
		StartDate: "Aug 2023",
		EndDate:   "Present",
		BulletPoints: []string{
			"Executed over 300 merchandising transitions on tight timelines by organizing team workflows",
			"Streamlined communication between floor and logistics teams",
		},
	},
	{
		Title:     "Manager",
		Org:       "Jasons Catered Events",
		StartDate: "Aug 2016",
		EndDate:   "Present",
		BulletPoints: []string{
			"Coordinated customized menus and dietary requirements for every client",
			"Supported event technology and digital order tracking",
		},
	},
}

var Education = []Role{
	{
		Title:     "Bachelor of Computer Science",
		Org:       "Western Governors University",
		StartDate: "Sept 2019",
		EndDate:   "May 2023",
		BulletPoints: []string{
			"Relevant coursework: Data Structures, Algorithms, Web Development",
		},
	},
	{
		Title:     "Project Management",
		Org:       "CompTIA",
		StartDate: "July 2022",
		EndDate:   "Present",
		BulletPoints: []string{
			"Certified in agile project management methodology",
		},
	},
}

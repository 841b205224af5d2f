package services

type shelfEntry struct {
	title  string
	author string
	year   int
}

// fallbackShelves is served when the catalog provider is unreachable or
// returns nothing usable. Unknown categories get the fiction shelf.
var fallbackShelves = map[string][]shelfEntry{
	"fiction": {
		{"The Great Gatsby", "F. Scott Fitzgerald", 1925},
		{"To Kill a Mockingbird", "Harper Lee", 1960},
		{"1984", "George Orwell", 1949},
		{"Pride and Prejudice", "Jane Austen", 1813},
		{"The Catcher in the Rye", "J.D. Salinger", 1951},
	},
	"scifi": {
		{"Dune", "Frank Herbert", 1965},
		{"Foundation", "Isaac Asimov", 1951},
		{"Neuromancer", "William Gibson", 1984},
		{"The Left Hand of Darkness", "Ursula K. Le Guin", 1969},
		{"Hyperion", "Dan Simmons", 1989},
	},
	"romance": {
		{"Outlander", "Diana Gabaldon", 1991},
		{"The Notebook", "Nicholas Sparks", 1996},
		{"Jane Eyre", "Charlotte Brontë", 1847},
		{"Twilight", "Stephenie Meyer", 2005},
		{"The Time Traveler's Wife", "Audrey Niffenegger", 2003},
	},
	"mystery": {
		{"Murder on the Orient Express", "Agatha Christie", 1934},
		{"The Girl with the Dragon Tattoo", "Stieg Larsson", 2005},
		{"Sherlock Holmes", "Arthur Conan Doyle", 1887},
		{"The Da Vinci Code", "Dan Brown", 2003},
		{"Gone Girl", "Gillian Flynn", 2012},
	},
	"fantasy": {
		{"The Lord of the Rings", "J.R.R. Tolkien", 1954},
		{"Harry Potter and the Sorcerer's Stone", "J.K. Rowling", 1997},
		{"A Game of Thrones", "George R.R. Martin", 1996},
		{"The Name of the Wind", "Patrick Rothfuss", 2007},
		{"Mistborn", "Brandon Sanderson", 2006},
	},
	"biography": {
		{"Steve Jobs", "Walter Isaacson", 2011},
		{"Becoming", "Michelle Obama", 2018},
		{"The Autobiography of Benjamin Franklin", "Benjamin Franklin", 1791},
		{"I Know Why the Caged Bird Sings", "Maya Angelou", 1969},
		{"Long Walk to Freedom", "Nelson Mandela", 1994},
	},
	"history": {
		{"A Brief History of Time", "Stephen Hawking", 1988},
		{"Sapiens", "Yuval Noah Harari", 2011},
		{"The Rise and Fall of the Third Reich", "William Shirer", 1960},
		{"A People's History of the United States", "Howard Zinn", 1980},
		{"The Silk Roads", "Peter Frankopan", 2015},
	},
	"education": {
		{"Thinking, Fast and Slow", "Daniel Kahneman", 2011},
		{"The Art of Learning", "Josh Waitzkin", 2007},
		{"Educated", "Tara Westover", 2018},
		{"Mindset", "Carol Dweck", 2006},
		{"Deep Work", "Cal Newport", 2016},
	},
	"business": {
		{"Zero to One", "Peter Thiel", 2014},
		{"The Lean Startup", "Eric Ries", 2011},
		{"Good to Great", "Jim Collins", 2001},
		{"The 7 Habits of Highly Effective People", "Stephen Covey", 1989},
		{"Sapiens in Business", "Yuval Harari", 2015},
	},
	"technology": {
		{"The Code Breaker", "Walter Isaacson", 2021},
		{"Cracking the Coding Interview", "Gayle Laakmann", 2015},
		{"Clean Code", "Robert Martin", 2008},
		{"The Pragmatic Programmer", "David Thomas & Andrew Hunt", 1999},
		{"Design Patterns", "Gang of Four", 1994},
	},
}

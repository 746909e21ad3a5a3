package seeder

func Defaults() []Seeder {
	return []Seeder{
		AdminUserSeeder{},
		DemoJobsSeeder{},
	}
}

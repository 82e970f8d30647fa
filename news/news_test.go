package news

import (
	"context"
	"testing"
	"time"

	"alpacafarm/db"
	"alpacafarm/domain"
	"alpacafarm/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *time.Time) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := NewService(db.NewMemoryStore(clock))
	svc.Now = clock
	return svc, &now
}

func newsInput(title string, published bool) models.NewsInput {
	return models.NewsInput{
		Title:       title,
		Excerpt:     "Коротко о главном",
		Content:     "На ферме родился малыш.",
		Image:       "/img/news.jpg",
		IsPublished: &published,
	}
}

func TestCreateDefaults(t *testing.T) {
	svc, now := newTestService()
	ctx := context.Background()

	in := newsInput("Новый малыш", true)
	in.IsPublished = nil
	id, err := svc.Create(ctx, in)
	require.NoError(t, err)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, id, all[0].ID)
	assert.Equal(t, models.DefaultNewsAuthor, all[0].Author)
	assert.True(t, all[0].IsPublished)
	assert.True(t, all[0].PublishDate.Equal(*now))
}

func TestCreateRequiresFields(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), models.NewsInput{Title: "x"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestListsNewestFirstAndHideDrafts(t *testing.T) {
	svc, now := newTestService()
	ctx := context.Background()

	oldID, err := svc.Create(ctx, newsInput("Весенняя стрижка", true))
	require.NoError(t, err)
	*now = now.Add(time.Hour)
	draftID, err := svc.Create(ctx, newsInput("Черновик", false))
	require.NoError(t, err)
	*now = now.Add(time.Hour)
	newID, err := svc.Create(ctx, newsInput("Открыта запись на экскурсии", true))
	require.NoError(t, err)

	published, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, published, 2)
	assert.Equal(t, newID, published[0].ID)
	assert.Equal(t, oldID, published[1].ID)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{newID, draftID, oldID}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.False(t, all[1].IsPublished)
}

func TestUpdateCanUnpublish(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	id, err := svc.Create(ctx, newsInput("Новость", true))
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, id, newsInput("Новость (обновлено)", false)))

	published, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	assert.Empty(t, published)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Новость (обновлено)", all[0].Title)
	assert.Equal(t, models.DefaultNewsAuthor, all[0].Author)
}

func TestMissingNewsIsNotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	err := svc.Update(ctx, "missing", newsInput("Новость", true))
	assert.True(t, domain.IsNotFound(err))

	err = svc.Delete(ctx, "missing")
	assert.True(t, domain.IsNotFound(err))
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	id, err := svc.Create(ctx, newsInput("Новость", true))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, id))

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

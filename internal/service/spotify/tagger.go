package spotify

//go:generate $MOCKGEN -source=tagger.go -destination=mocks/tagger_mock.go

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
	"github.com/oshokin/id3v2/v2"

	"github.com/dsmirnov/spotify-grabber/internal/client/spotify"
	"github.com/dsmirnov/spotify-grabber/internal/constants"
	"github.com/dsmirnov/spotify-grabber/internal/logger"
)

// trackSourceURLPrefix is the public track page prefix embedded as a source comment.
const trackSourceURLPrefix = "https://open.spotify.com/track/"

// TagProcessor defines the interface for writing metadata tags to audio files.
type TagProcessor interface {
	// WriteTags writes the request's non-empty fields into the audio file.
	// The tagging scheme follows the file extension.
	WriteTags(ctx context.Context, req *WriteTagsRequest) error
}

// WriteTagsRequest contains parameters for writing metadata to audio files.
// Empty fields are left untouched in the file.
type WriteTagsRequest struct {
	// TrackPath is the file path of the audio track.
	TrackPath string
	// Artist is the primary artist name.
	Artist string
	// Title is the track title.
	Title string
	// Album is the album name.
	Album string
	// AlbumArtist is the album-level artist, falls back to Artist when empty.
	AlbumArtist string
	// ReleaseYear is the four-digit release year.
	ReleaseYear string
	// DiscNumber is the disc the track is on, zero means absent.
	DiscNumber int64
	// TrackNumber is the track's position, zero means absent.
	TrackNumber int64
	// SourceID is the catalog track ID, embedded as a source URL comment.
	SourceID string
	// CoverURL is the cover art location, fetched and embedded at tag time.
	CoverURL string
}

// TagProcessorImpl provides the default implementation of TagProcessor.
type TagProcessorImpl struct {
	// spotifyClient fetches cover art bytes.
	spotifyClient spotify.Client
}

// imageMetadata contains image data and its MIME type.
type imageMetadata struct {
	// data contains the raw image bytes.
	data []byte
	// mimeType specifies the image format (e.g., "image/jpeg").
	mimeType string
}

// extractFLACCommentResult contains the result of extracting FLAC comment metadata.
type extractFLACCommentResult struct {
	// Comment is the FLAC Vorbis comment metadata block.
	Comment *flacvorbis.MetaDataBlockVorbisComment
	// Index is the index of the comment block in the FLAC file metadata (-1 if not found).
	Index int
}

// Static error definitions for better error handling.
var (
	// ErrEmptyTrackPath indicates that the track file path is empty.
	ErrEmptyTrackPath = errors.New("track path cannot be empty")
)

// NewTagProcessor creates a new TagProcessor instance.
func NewTagProcessor(spotifyClient spotify.Client) TagProcessor {
	return &TagProcessorImpl{spotifyClient: spotifyClient}
}

// WriteTags writes the request's non-empty fields into the audio file.
func (tp *TagProcessorImpl) WriteTags(ctx context.Context, req *WriteTagsRequest) error {
	if req.TrackPath == "" {
		return ErrEmptyTrackPath
	}

	// A failed cover fetch must not abort the textual tags.
	image := tp.fetchCover(ctx, req.CoverURL)

	if filepath.Ext(req.TrackPath) == constants.ExtensionMP3 {
		return tp.writeMP3Tags(req, image)
	}

	return tp.writeFLACTags(req, image)
}

// fetchCover downloads the cover art bytes and sniffs their MIME type.
func (tp *TagProcessorImpl) fetchCover(ctx context.Context, coverURL string) *imageMetadata {
	if coverURL == "" {
		return nil
	}

	data, err := tp.spotifyClient.DownloadCover(ctx, coverURL)
	if err != nil {
		logger.Errorf(ctx, "Failed to download cover art: %v", err)

		return nil
	}

	return &imageMetadata{
		data:     data,
		mimeType: http.DetectContentType(data),
	}
}

func (tp *TagProcessorImpl) writeMP3Tags(req *WriteTagsRequest, image *imageMetadata) error {
	//nolint:exhaustruct // ParseFrames intentionally omitted when Parse=false (parsing disabled).
	tag, err := id3v2.Open(req.TrackPath, id3v2.Options{Parse: false})
	if err != nil {
		return err
	}

	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if req.Artist != "" {
		tag.SetArtist(req.Artist)
	}

	if req.Title != "" {
		tag.SetTitle(req.Title)
	}

	if req.Album != "" {
		tag.SetAlbum(req.Album)
	}

	if req.ReleaseYear != "" {
		tag.SetYear(req.ReleaseYear)
	}

	if albumArtist := tp.resolveAlbumArtist(req); albumArtist != "" {
		tag.AddTextFrame(tag.CommonID("Band/Orchestra/Accompaniment"), tag.DefaultEncoding(), albumArtist)
	}

	if req.DiscNumber > 0 {
		tag.AddTextFrame(
			tag.CommonID("Part of a set"),
			tag.DefaultEncoding(),
			strconv.FormatInt(req.DiscNumber, 10))
	}

	if req.TrackNumber > 0 {
		tag.AddTextFrame(
			tag.CommonID("Track number/Position in set"),
			tag.DefaultEncoding(),
			strconv.FormatInt(req.TrackNumber, 10))
	}

	if req.SourceID != "" {
		//nolint:exhaustruct // Description field intentionally empty for source comments.
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding: id3v2.EncodingUTF8,
			// Field is required, so we just use lingua franca.
			Language: id3v2.EnglishISO6392Code,
			Text:     trackSourceURLPrefix + req.SourceID,
		})
	}

	if image != nil {
		//nolint:exhaustruct // Description field intentionally empty for cover images.
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    image.mimeType,
			PictureType: id3v2.PTFrontCover,
			Picture:     image.data,
		})
	}

	return tag.Save()
}

func (tp *TagProcessorImpl) writeFLACTags(req *WriteTagsRequest, image *imageMetadata) error {
	f, err := flac.ParseFile(filepath.Clean(req.TrackPath))
	if err != nil {
		return err
	}

	commentResult, err := tp.extractFLACComment(req.TrackPath)
	if err != nil {
		return err
	}

	tag := commentResult.Comment
	if tag == nil {
		tag = flacvorbis.New()
	}

	if err = tp.addFLACTags(tag, req); err != nil {
		return err
	}

	tagMeta := tag.Marshal()
	if commentResult.Index >= 0 {
		f.Meta[commentResult.Index] = &tagMeta
	} else {
		f.Meta = append(f.Meta, &tagMeta)
	}

	tp.embedFLACCover(f, image)

	return f.Save(req.TrackPath)
}

func (tp *TagProcessorImpl) extractFLACComment(filename string) (*extractFLACCommentResult, error) {
	f, err := flac.ParseFile(filepath.Clean(filename))
	if err != nil {
		return nil, err
	}

	for idx, meta := range f.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}

		var comment *flacvorbis.MetaDataBlockVorbisComment

		comment, err = flacvorbis.ParseFromMetaDataBlock(*meta)
		if err == nil {
			return &extractFLACCommentResult{
				Comment: comment,
				Index:   idx,
			}, nil
		}
	}

	return &extractFLACCommentResult{
		Comment: nil,
		Index:   -1,
	}, nil
}

func (tp *TagProcessorImpl) addFLACTags(tag *flacvorbis.MetaDataBlockVorbisComment, req *WriteTagsRequest) error {
	vorbisTags := map[string]string{
		"ARTIST":      req.Artist,
		"TITLE":       req.Title,
		"ALBUM":       req.Album,
		"ALBUMARTIST": tp.resolveAlbumArtist(req),
		"DATE":        req.ReleaseYear,
	}

	if req.DiscNumber > 0 {
		vorbisTags["DISCNUMBER"] = strconv.FormatInt(req.DiscNumber, 10)
	}

	if req.TrackNumber > 0 {
		vorbisTags["TRACKNUMBER"] = strconv.FormatInt(req.TrackNumber, 10)
	}

	if req.SourceID != "" {
		vorbisTags["COMMENT"] = trackSourceURLPrefix + req.SourceID
	}

	for k, v := range vorbisTags {
		if v == "" {
			continue
		}

		if err := tag.Add(k, v); err != nil {
			return err
		}
	}

	return nil
}

func (tp *TagProcessorImpl) embedFLACCover(f *flac.File, image *imageMetadata) {
	if image == nil {
		return
	}

	picture, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "", image.data, image.mimeType)
	if err != nil {
		return
	}

	pictureMeta := picture.Marshal()
	f.Meta = append(f.Meta, &pictureMeta)
}

// resolveAlbumArtist applies the album-artist fallback to the track artist.
func (tp *TagProcessorImpl) resolveAlbumArtist(req *WriteTagsRequest) string {
	if req.AlbumArtist != "" {
		return req.AlbumArtist
	}

	return req.Artist
}

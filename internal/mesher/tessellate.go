package mesher

// tessellate emits two triangles for every quad whose four corners all
// have vertices, splitting along the (row,col)-(row+1,col+1) diagonal.
// Quads touching any invalid cell produce no faces; holes are skipped,
// never reported.
func tessellate(vmap *vertexIndexMap, height, width int, faces [][3]int32) [][3]int32 {
	for row := 0; row < height-1; row++ {
		for col := 0; col < width-1; col++ {
			v1 := vmap.at(row, col)
			v2 := vmap.at(row, col+1)
			v3 := vmap.at(row+1, col+1)
			v4 := vmap.at(row+1, col)
			if v1 == absent || v2 == absent || v3 == absent || v4 == absent {
				continue
			}
			faces = append(faces,
				[3]int32{v1, v2, v3},
				[3]int32{v1, v3, v4},
			)
		}
	}
	return faces
}
